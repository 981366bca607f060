package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	serrors "stockroom/internal/errors"
)

// document is the on-disk layout of the data file. LastID is a monotonic
// counter persisted alongside the table so product IDs are never reused, even
// after the product with the highest ID is deleted.
type document struct {
	LastID   int64     `json:"lastId"`
	Products []Product `json:"products"`
}

// FileStore implements ProductStore on top of a single JSON document on disk.
// The table is held in memory behind a mutex; every mutation validates,
// mutates and persists under the lock, so concurrent requests cannot lose
// updates. Writes go through a temp file and rename, so readers never observe
// a partial document.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	lowStock int
	logger   *slog.Logger

	lastID   int64
	products []Product
}

// NewFileStore opens the data file at path, creating the directory and an
// empty document if the file does not exist yet. A malformed file is logged
// and treated as an empty table; the broken content is overwritten on the
// next successful save.
func NewFileStore(path string, lowStockThreshold int, logger *slog.Logger) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		lowStock: lowStockThreshold,
		logger:   logger.With("component", "filestore"),
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the data file into memory.
func (s *FileStore) load() error {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Info("Data file does not exist, creating an empty one", "path", s.path)
		if persistErr := s.persistLocked(); persistErr != nil {
			return persistErr
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}

	var doc document
	if jsonErr := json.Unmarshal(content, &doc); jsonErr != nil {
		// A bare array of products is the legacy layout, before the lastId
		// counter was persisted alongside the table.
		var legacy []Product
		if legacyErr := json.Unmarshal(content, &legacy); legacyErr != nil {
			s.logger.Warn("Data file is malformed, starting with an empty table",
				"path", s.path, "error", jsonErr)
			return nil
		}
		doc.Products = legacy
	}

	s.products = doc.Products
	s.lastID = doc.LastID
	for _, p := range s.products {
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}
	s.logger.Info("Data file loaded", "path", s.path, "products", len(s.products))
	return nil
}

// persistLocked rewrites the whole document. Callers must hold the write lock
// (or be the only reference, during load).
func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(document{LastID: s.lastID, Products: s.productsOrEmpty()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file %s: %w", s.path, err)
	}
	return nil
}

// productsOrEmpty keeps the persisted table a JSON array rather than null.
func (s *FileStore) productsOrEmpty() []Product {
	if s.products == nil {
		return []Product{}
	}
	return s.products
}

// FindByID retrieves a product by its ID.
func (s *FileStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return nil, serrors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll retrieves all products in insertion order.
func (s *FileStore) FindAll(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.productsOrEmpty()), nil
}

// Search filters products by a case-insensitive substring match against name,
// category and supplier. An empty term returns the full table.
func (s *FileStore) Search(ctx context.Context, term string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(s.productsOrEmpty()), nil
	}
	matches := make([]Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) ||
			strings.Contains(strings.ToLower(p.Supplier), term) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// Create appends a new product, assigning the next ID and timestamps.
func (s *FileStore) Create(ctx context.Context, name, category string, price float64, stock int, supplier string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(name, 0) {
		return nil, serrors.ErrDuplicateName
	}

	now := time.Now().UTC()
	product := Product{
		ID:        s.lastID + 1,
		Name:      name,
		Category:  category,
		Price:     price,
		Stock:     stock,
		Supplier:  supplier,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products = append(s.products, product)
	s.lastID++

	if err := s.persistLocked(); err != nil {
		// discard the unpersisted mutation
		s.products = s.products[:len(s.products)-1]
		s.lastID--
		return nil, err
	}
	return &product, nil
}

// Update replaces the mutable fields of an existing product.
func (s *FileStore) Update(ctx context.Context, id int64, name, category string, price float64, stock int, supplier string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return nil, serrors.ErrProductNotFound
	}
	if s.nameTakenLocked(name, id) {
		return nil, serrors.ErrDuplicateName
	}

	previous := s.products[i]
	s.products[i].Name = name
	s.products[i].Category = category
	s.products[i].Price = price
	s.products[i].Stock = stock
	s.products[i].Supplier = supplier
	s.products[i].UpdatedAt = time.Now().UTC()

	if err := s.persistLocked(); err != nil {
		s.products[i] = previous
		return nil, err
	}
	updated := s.products[i]
	return &updated, nil
}

// DeleteByID removes a product by position and returns the removed record.
// The ID is not reused.
func (s *FileStore) DeleteByID(ctx context.Context, id int64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfLocked(id)
	if i < 0 {
		return nil, serrors.ErrProductNotFound
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)

	if err := s.persistLocked(); err != nil {
		s.products = slices.Insert(s.products, i, removed)
		return nil, err
	}
	return &removed, nil
}

// Stats computes the aggregate statistics report over the table.
func (s *FileStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{TotalProducts: len(s.products)}
	categories := make(map[string]struct{})
	for _, p := range s.products {
		stats.TotalStock += p.Stock
		stats.TotalValue += p.Price * float64(p.Stock)
		categories[p.Category] = struct{}{}
		if p.Stock < s.lowStock {
			stats.LowStockProducts++
		}
	}
	stats.Categories = len(categories)
	return &stats, nil
}

// indexOfLocked returns the position of the product with the given ID, or -1.
func (s *FileStore) indexOfLocked(id int64) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

// nameTakenLocked reports whether a product other than excludeID already uses
// the name, compared case-insensitively.
func (s *FileStore) nameTakenLocked(name string, excludeID int64) bool {
	for _, p := range s.products {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
