package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

var (
	redShirt = domain.Product{ID: 1, Title: "Red Shirt", Category: "clothes", Price: 10}
	blueHat  = domain.Product{ID: 2, Title: "Blue Hat", Category: "clothes", Price: 5}
	redMug   = domain.Product{ID: 3, Title: "Red Mug", Category: "home", Price: 8}

	catalog = []domain.Product{redShirt, blueHat, redMug}
)

// scriptedSource is a hand-rolled catalog collaborator. The onList hook
// fires once, before the products captured at call time are returned,
// which lets a test interleave a second refresh with an in-flight one.
type scriptedSource struct {
	products   []domain.Product
	categories []string
	err        error
	onList     func()
}

func (s *scriptedSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := s.products
	if s.onList != nil {
		hook := s.onList
		s.onList = nil
		hook()
	}
	if s.err != nil {
		return nil, s.err
	}
	return products, nil
}

func (s *scriptedSource) ListCategories(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func (s *scriptedSource) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestCatalog(source domain.CatalogSource) CatalogUseCase {
	return NewCatalogUseCase(source, metrics.New(), testLogger())
}

func TestDeriveVisible(t *testing.T) {
	t.Run("no criteria retains everything in order", func(t *testing.T) {
		visible := DeriveVisible(catalog, domain.FilterCriteria{})
		assert.Equal(t, catalog, visible)
	})

	t.Run("category filters by exact case-sensitive match", func(t *testing.T) {
		visible := DeriveVisible(catalog, domain.FilterCriteria{Category: "clothes"})
		assert.Equal(t, []domain.Product{redShirt, blueHat}, visible)

		assert.Empty(t, DeriveVisible(catalog, domain.FilterCriteria{Category: "Clothes"}))
	})

	t.Run("search is a case-folded substring match over titles", func(t *testing.T) {
		visible := DeriveVisible(catalog, domain.FilterCriteria{SearchText: "red"})
		assert.Equal(t, []domain.Product{redShirt, redMug}, visible)
	})

	t.Run("pure: identical inputs yield identical output, inputs untouched", func(t *testing.T) {
		criteria := domain.FilterCriteria{SearchText: "red"}
		first := DeriveVisible(catalog, criteria)
		second := DeriveVisible(catalog, criteria)

		assert.Equal(t, first, second)
		assert.Equal(t, []domain.Product{redShirt, blueHat, redMug}, catalog)
	})
}

func TestVisibleEmptyReason(t *testing.T) {
	source := &scriptedSource{products: catalog, categories: []string{"clothes", "home"}}
	uc := newTestCatalog(source)
	require.NoError(t, uc.Refresh(context.Background()))

	t.Run("empty search result names the term", func(t *testing.T) {
		result := uc.Visible(domain.FilterCriteria{SearchText: "plasma tv"})
		assert.Empty(t, result.Products)
		assert.Equal(t, EmptyReasonSearch, result.EmptyReason)
		assert.Equal(t, "plasma tv", result.SearchTerm)
	})

	t.Run("empty category result is generic", func(t *testing.T) {
		result := uc.Visible(domain.FilterCriteria{Category: "jewelery"})
		assert.Empty(t, result.Products)
		assert.Equal(t, EmptyReasonCategory, result.EmptyReason)
		assert.Equal(t, "", result.SearchTerm)
	})

	t.Run("non-empty result carries no reason", func(t *testing.T) {
		result := uc.Visible(domain.FilterCriteria{SearchText: "red"})
		assert.Equal(t, []domain.Product{redShirt, redMug}, result.Products)
		assert.Equal(t, EmptyReasonNone, result.EmptyReason)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("replaces the snapshot wholesale", func(t *testing.T) {
		source := &scriptedSource{products: catalog, categories: []string{"clothes", "home"}}
		uc := newTestCatalog(source)

		require.NoError(t, uc.Refresh(context.Background()))
		assert.Equal(t, catalog, uc.Products())
		assert.Equal(t, []string{"clothes", "home"}, uc.Categories())
		assert.NoError(t, uc.LastError())
	})

	t.Run("failure keeps the previous snapshot and surfaces the error", func(t *testing.T) {
		source := &scriptedSource{products: catalog, categories: []string{"clothes", "home"}}
		uc := newTestCatalog(source)
		require.NoError(t, uc.Refresh(context.Background()))

		source.err = fmt.Errorf("%w: connection refused", domain.ErrFetchFailed)
		err := uc.Refresh(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFetchFailed)
		assert.Equal(t, catalog, uc.Products(), "stale snapshot must survive a failed refresh")
		assert.ErrorIs(t, uc.LastError(), domain.ErrFetchFailed)

		source.err = nil
		require.NoError(t, uc.Refresh(context.Background()))
		assert.NoError(t, uc.LastError(), "a successful refresh clears the surfaced error")
	})

	t.Run("a response that lost to a later-issued refresh is discarded", func(t *testing.T) {
		older := []domain.Product{redShirt}
		newer := []domain.Product{redShirt, blueHat, redMug}

		source := &scriptedSource{products: older, categories: []string{"clothes"}}
		uc := newTestCatalog(source)

		// While the first refresh is in flight, a second one is issued
		// and completes with a newer snapshot.
		source.onList = func() {
			source.products = newer
			require.NoError(t, uc.Refresh(context.Background()))
		}

		require.NoError(t, uc.Refresh(context.Background()))
		assert.Equal(t, newer, uc.Products(), "the stale in-flight response must not overwrite the newer snapshot")
	})

	t.Run("an expired attempt deadline surfaces the error", func(t *testing.T) {
		source := &scriptedSource{products: catalog, categories: []string{"clothes", "home"}}
		uc := newTestCatalog(source)
		require.NoError(t, uc.Refresh(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		// The collaborator hangs past the attempt deadline, then reports
		// the timeout the way an http.Client would.
		source.onList = func() {
			<-ctx.Done()
			source.err = fmt.Errorf("%w: %v", domain.ErrFetchFailed, ctx.Err())
		}

		err := uc.Refresh(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, uc.LastError(), domain.ErrFetchFailed, "a timed-out refresh is a failure, not a teardown")
		assert.Equal(t, catalog, uc.Products(), "stale snapshot must survive the timeout")
	})

	t.Run("a response for a torn-down consumer is discarded", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		source := &scriptedSource{products: catalog, categories: []string{"clothes", "home"}}
		source.onList = cancel // consumer goes away mid-flight

		uc := newTestCatalog(source)
		err := uc.Refresh(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, uc.Products(), "a cancelled fetch must not be applied")
	})
}
