package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// postgresCatalogRepository serves the catalog collaborator contract
// from a local Postgres mirror of the third-party catalog. Selected
// with CATALOG_SOURCE=postgres.
type postgresCatalogRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCatalogRepository(db *sql.DB, logger *logrus.Logger) domain.CatalogSource {
	return &postgresCatalogRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, title, price, image, category, description FROM products ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Image, &p.Category, &p.Description); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return products, nil
}

func (r *postgresCatalogRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return categories, nil
}

func (r *postgresCatalogRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT id, title, price, image, category, description FROM products WHERE id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Price, &p.Image, &p.Category, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Warnf("Product with ID %d not found", id)
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return &p, nil
}
