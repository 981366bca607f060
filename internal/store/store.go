// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"
)

// Product represents a product record as persisted in the data file.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Supplier  string    `json:"supplier"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats is the aggregate statistics report over the product table.
type Stats struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalStock       int     `json:"totalStock"`
	TotalValue       float64 `json:"totalValue"`
	Categories       int     `json:"categories"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Search returns the products whose name, category or supplier contains
	// the term, compared case-insensitively. An empty term returns the full
	// table unchanged in order.
	Search(ctx context.Context, term string) ([]Product, error)

	// Create adds a new product, assigning its ID and timestamps.
	// Returns ErrDuplicateName if the name collides case-insensitively with
	// an existing product.
	Create(ctx context.Context, name, category string, price float64, stock int, supplier string) (*Product, error)

	// Update replaces the mutable fields of an existing product, preserving
	// ID and creation time and refreshing the update time.
	// Returns ErrProductNotFound if no product exists with the given ID and
	// ErrDuplicateName if the new name collides with a different product.
	Update(ctx context.Context, id int64, name, category string, price float64, stock int, supplier string) (*Product, error)

	// DeleteByID removes a product by its ID and returns the removed record.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (*Product, error)

	// Stats computes the aggregate statistics report.
	Stats(ctx context.Context) (*Stats, error)
}
