package domain

import "context"

// Product is one catalog entry as served by the catalog collaborator.
// Products are immutable once fetched; the collaborator owns them.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// CatalogSource is the external catalog collaborator. Implementations
// return eventually-consistent snapshots; callers keep the last-known
// snapshot when a fetch fails.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
}
