package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// catalogHTTPClient talks to the third-party catalog API, which serves
// bare JSON arrays/objects (no response envelope).
type catalogHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) domain.CatalogSource {
	return &catalogHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *catalogHTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Fetched %d products", len(products))
	return products, nil
}

func (c *catalogHTTPClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &categories); err != nil {
		return nil, err
	}
	c.log.Infof("CatalogClient: Fetched %d categories", len(categories))
	return categories, nil
}

func (c *catalogHTTPClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &product); err != nil {
		return nil, err
	}
	if product.ID == 0 {
		// The upstream API answers a missing id with an empty body
		// rather than a 404.
		c.log.Warnf("CatalogClient: Product %d not present in catalog", id)
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return &product, nil
}

func (c *catalogHTTPClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", domain.ErrFetchFailed, url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Request to %s failed: %v", url, err)
		return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", url, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("CatalogClient: Request to %s returned status %d", url, resp.StatusCode)
		return fmt.Errorf("%w: unexpected status %d from %s", domain.ErrFetchFailed, resp.StatusCode, url)
	}

	// An empty body is how the upstream API reports a missing resource,
	// so EOF leaves out at its zero value instead of failing.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.log.Errorf("CatalogClient: Failed to decode response from %s: %v", url, err)
		return fmt.Errorf("%w: decoding response: %v", domain.ErrFetchFailed, err)
	}
	return nil
}
