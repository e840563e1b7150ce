package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

// EmptyReason tags why a derived list came back empty so the render
// layer can distinguish "no results for <term>" from a generically
// empty category. An empty catalog with no active filter has no reason.
type EmptyReason string

const (
	EmptyReasonNone     EmptyReason = ""
	EmptyReasonSearch   EmptyReason = "search"
	EmptyReasonCategory EmptyReason = "category"
)

// VisibleResult is the derived product list plus the empty-result
// contract of the filter engine.
type VisibleResult struct {
	Products    []domain.Product `json:"products"`
	EmptyReason EmptyReason      `json:"empty_reason,omitempty"`
	SearchTerm  string           `json:"search_term,omitempty"`
}

// DeriveVisible filters a raw catalog snapshot by the committed
// criteria. Pure function: identical inputs yield identical output,
// catalog order is preserved, the inputs are never mutated. Category
// matches the collaborator's vocabulary verbatim (case-sensitive);
// search is a case-folded substring match over the title.
func DeriveVisible(catalog []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	if criteria.Category != "" {
		visible := make([]domain.Product, 0, len(catalog))
		for _, p := range catalog {
			if p.Category == criteria.Category {
				visible = append(visible, p)
			}
		}
		return visible
	}

	if criteria.SearchText != "" {
		needle := strings.ToLower(criteria.SearchText)
		visible := make([]domain.Product, 0, len(catalog))
		for _, p := range catalog {
			if strings.Contains(strings.ToLower(p.Title), needle) {
				visible = append(visible, p)
			}
		}
		return visible
	}

	visible := make([]domain.Product, len(catalog))
	copy(visible, catalog)
	return visible
}

type CatalogUseCase interface {
	// Refresh replaces the raw snapshot wholesale from the collaborator.
	// A response that lost to a later-issued refresh, or whose context
	// was cancelled while in flight, is discarded.
	Refresh(ctx context.Context) error
	Visible(criteria domain.FilterCriteria) VisibleResult
	Products() []domain.Product
	Categories() []string
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	// LastError reports the collaborator error from the most recent
	// failed refresh, nil after a successful one.
	LastError() error
}

type catalogUseCase struct {
	source domain.CatalogSource
	log    *logrus.Logger
	m      *metrics.Metrics

	mu         sync.Mutex
	issued     uint64 // sequence of the most recently issued refresh
	products   []domain.Product
	categories []string
	lastErr    error
}

func NewCatalogUseCase(source domain.CatalogSource, m *metrics.Metrics, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		source: source,
		log:    logger,
		m:      m,
	}
}

func (uc *catalogUseCase) Refresh(ctx context.Context) error {
	uc.mu.Lock()
	uc.issued++
	seq := uc.issued
	uc.mu.Unlock()

	products, productsErr := uc.source.ListProducts(ctx)
	categories, categoriesErr := uc.source.ListCategories(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if seq != uc.issued {
		// A newer refresh was issued while this one was in flight;
		// last-issued-wins, this response must not overwrite it.
		uc.log.WithFields(logrus.Fields{"seq": seq, "latest": uc.issued}).Debug("Discarding stale catalog refresh")
		uc.m.CatalogRefresh.WithLabelValues("stale").Inc()
		return nil
	}

	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		// The consumer of this fetch was torn down; do not apply the
		// response to a dead view. An expired attempt deadline is not
		// teardown: it means the collaborator hung, which is a fetch
		// failure like any other and falls through below.
		uc.log.Debugf("Discarding cancelled catalog refresh: %v", err)
		uc.m.CatalogRefresh.WithLabelValues("cancelled").Inc()
		return err
	}

	if productsErr != nil || categoriesErr != nil {
		err := productsErr
		if err == nil {
			err = categoriesErr
		}
		// Keep the last-known snapshot and surface the error for display.
		uc.lastErr = err
		uc.log.Errorf("Catalog refresh failed, keeping previous snapshot: %v", err)
		uc.m.CatalogRefresh.WithLabelValues("error").Inc()
		return err
	}

	uc.products = products
	uc.categories = categories
	uc.lastErr = nil
	uc.log.WithFields(logrus.Fields{"products": len(products), "categories": len(categories)}).Info("Catalog snapshot refreshed")
	uc.m.CatalogRefresh.WithLabelValues("ok").Inc()
	return nil
}

func (uc *catalogUseCase) Visible(criteria domain.FilterCriteria) VisibleResult {
	uc.mu.Lock()
	snapshot := uc.products
	uc.mu.Unlock()

	visible := DeriveVisible(snapshot, criteria)
	result := VisibleResult{Products: visible}

	if len(visible) == 0 {
		switch {
		case criteria.Category != "":
			result.EmptyReason = EmptyReasonCategory
		case criteria.SearchText != "":
			result.EmptyReason = EmptyReasonSearch
			result.SearchTerm = criteria.SearchText
		}
	}
	return result
}

func (uc *catalogUseCase) Products() []domain.Product {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	products := make([]domain.Product, len(uc.products))
	copy(products, uc.products)
	return products
}

func (uc *catalogUseCase) Categories() []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	categories := make([]string, len(uc.categories))
	copy(categories, uc.categories)
	return categories
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return uc.source.GetProduct(ctx, id)
}

func (uc *catalogUseCase) LastError() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastErr
}
