// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	serrors "stockroom/internal/errors"
	"stockroom/internal/metrics"
	"stockroom/internal/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Search returns the products matching the search term, or all products
	// when the term is empty.
	Search(ctx context.Context, term string) ([]ProductDto, error)

	// Create adds a new product to the system.
	// Returns ErrDuplicateName if the name is already taken.
	Create(ctx context.Context, draft ProductDraft) (*ProductDto, error)

	// Update modifies an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, draft ProductDraft) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed record.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) (*ProductDto, error)

	// Stats computes the aggregate statistics report.
	Stats(ctx context.Context) (*StatsDto, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDraft represents the unvalidated input payload for create and update
// operations. Numeric fields are pointers so an absent field is
// distinguishable from a zero value.
type ProductDraft struct {
	Name     string   `json:"name"     validate:"required,max=100"`
	Category string   `json:"category" validate:"required,max=100"`
	Price    *float64 `json:"price"    validate:"required,gt=0"`
	Stock    *int     `json:"stock"    validate:"required,gte=0"`
	Supplier string   `json:"supplier" validate:"required,max=100"`
}

// Normalize trims surrounding whitespace from the string fields. It must be
// called before validation so whitespace-only values fail the required rule.
func (d *ProductDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Category = strings.TrimSpace(d.Category)
	d.Supplier = strings.TrimSpace(d.Supplier)
}

// complete reports whether the numeric fields are present. The transport
// layer validates drafts before calling the service, but dereferencing an
// unchecked pointer must never be able to panic.
func (d *ProductDraft) complete() error {
	if d.Price == nil || d.Stock == nil {
		return serrors.ErrMissingFields
	}
	return nil
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Supplier  string    `json:"supplier"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsDto represents the data transfer object for the statistics report.
type StatsDto struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalStock       int     `json:"totalStock"`
	TotalValue       float64 `json:"totalValue"`
	Categories       int     `json:"categories"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// Search retrieves the products matching the term and returns them as ProductDTOs.
// Returns an empty slice if nothing matches or error if the retrieval fails.
func (s *Service) Search(ctx context.Context, term string) ([]ProductDto, error) {
	products, err := s.repository.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns ErrMissingFields if the draft is incomplete and ErrDuplicateName
// if the name is already taken.
func (s *Service) Create(ctx context.Context, draft ProductDraft) (*ProductDto, error) {
	if err := draft.complete(); err != nil {
		return nil, err
	}
	p, err := s.repository.Create(ctx, draft.Name, draft.Category, *draft.Price, *draft.Stock, draft.Supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.ProductsCreated.Inc()
	return toDto(p), nil
}

// Update modifies an existing product's details and returns the updated record.
// Returns ErrMissingFields if the draft is incomplete and ErrProductNotFound
// if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, draft ProductDraft) (*ProductDto, error) {
	if err := draft.complete(); err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, id, draft.Name, draft.Category, *draft.Price, *draft.Stock, draft.Supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID and returns the removed record.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) (*ProductDto, error) {
	removed, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	metrics.ProductsDeleted.Inc()
	return toDto(removed), nil
}

// Stats computes the aggregate statistics report and returns it as a StatsDto.
func (s *Service) Stats(ctx context.Context) (*StatsDto, error) {
	stats, err := s.repository.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	return &StatsDto{
		TotalProducts:    stats.TotalProducts,
		TotalStock:       stats.TotalStock,
		TotalValue:       stats.TotalValue,
		Categories:       stats.Categories,
		LowStockProducts: stats.LowStockProducts,
	}, nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:        product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		Stock:     product.Stock,
		Supplier:  product.Supplier,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
