package service

import (
	"context"
	"errors"
	"testing"
	"time"

	serrors "stockroom/internal/errors"
	"stockroom/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	stats    store.Stats
	error    error

	createdName     string
	createdSupplier string
	searchTerm      string
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductStore) Search(_ context.Context, term string) ([]store.Product, error) {
	m.searchTerm = term
	return m.products, m.error
}

func (m *mockProductStore) Create(_ context.Context, name, _ string, _ float64, _ int, supplier string) (*store.Product, error) {
	m.createdName = name
	m.createdSupplier = supplier
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) Update(_ context.Context, _ int64, _, _ string, _ float64, _ int, _ string) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

func (m *mockProductStore) Stats(_ context.Context) (*store.Stats, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.stats, nil
}

func draftOf(name, category string, price float64, stock int, supplier string) ProductDraft {
	return ProductDraft{Name: name, Category: category, Price: &price, Stock: &stock, Supplier: supplier}
}

func Test_ProductService_FindByID(t *testing.T) {
	now := time.Now().UTC()
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: 1, Name: "Widget", Category: "Tools", Price: 9.99, Stock: 5, Supplier: "Acme", CreatedAt: now, UpdatedAt: now},
			},
			expected: &ProductDto{ID: 1, Name: "Widget", Category: "Tools", Price: 9.99, Stock: 5, Supplier: "Acme", CreatedAt: now, UpdatedAt: now},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: serrors.ErrProductNotFound},
			expectError: serrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), 1)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_Search(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		term        string
		expected    []ProductDto
		expectError error
	}{
		{
			name:      "Success - products found",
			mockStore: &mockProductStore{products: []store.Product{{ID: 1, Name: "Widget"}}},
			term:      "wid",
			expected:  []ProductDto{{ID: 1, Name: "Widget"}},
		},
		{
			name:      "Success - empty term, no products",
			mockStore: &mockProductStore{products: []store.Product{}},
			expected:  []ProductDto{},
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.Search(context.Background(), tc.term)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
			assert.Equal(t, tc.term, tc.mockStore.searchTerm)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		draft       ProductDraft
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product created",
			mockStore: &mockProductStore{
				product: store.Product{ID: 1, Name: "Widget", Category: "Tools", Price: 9.99, Stock: 5, Supplier: "Acme"},
			},
			draft:    draftOf("Widget", "Tools", 9.99, 5, "Acme"),
			expected: &ProductDto{ID: 1, Name: "Widget", Category: "Tools", Price: 9.99, Stock: 5, Supplier: "Acme"},
		},
		{
			name:        "Error - duplicate name",
			mockStore:   &mockProductStore{error: serrors.ErrDuplicateName},
			draft:       draftOf("Widget", "Tools", 9.99, 5, "Acme"),
			expectError: serrors.ErrDuplicateName,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			draft:       draftOf("Widget", "Tools", 9.99, 5, "Acme"),
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			created, err := service.Create(context.Background(), tc.draft)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
			assert.Equal(t, tc.draft.Name, tc.mockStore.createdName)
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product updated",
			mockStore: &mockProductStore{
				product: store.Product{ID: 1, Name: "Widget", Category: "Hardware", Price: 12.5, Stock: 3, Supplier: "Bolt Inc"},
			},
			expected: &ProductDto{ID: 1, Name: "Widget", Category: "Hardware", Price: 12.5, Stock: 3, Supplier: "Bolt Inc"},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: serrors.ErrProductNotFound},
			expectError: serrors.ErrProductNotFound,
		},
		{
			name:        "Error - duplicate name",
			mockStore:   &mockProductStore{error: serrors.ErrDuplicateName},
			expectError: serrors.ErrDuplicateName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), 1, draftOf("Widget", "Hardware", 12.5, 3, "Bolt Inc"))
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_IncompleteDraft(t *testing.T) {
	// given: drafts that skipped transport validation
	noPrice := draftOf("Widget", "Tools", 9.99, 5, "Acme")
	noPrice.Price = nil
	noStock := draftOf("Widget", "Tools", 9.99, 5, "Acme")
	noStock.Stock = nil

	mockStore := &mockProductStore{}
	service := NewService(mockStore)

	for _, draft := range []ProductDraft{noPrice, noStock} {
		// when / then
		created, err := service.Create(context.Background(), draft)
		assert.ErrorIs(t, err, serrors.ErrMissingFields)
		assert.Nil(t, created)

		updated, err := service.Update(context.Background(), 1, draft)
		assert.ErrorIs(t, err, serrors.ErrMissingFields)
		assert.Nil(t, updated)
	}
	assert.Empty(t, mockStore.createdName, "store must not be reached with an incomplete draft")
}

func Test_ProductService_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name:      "Success - product deleted",
			mockStore: &mockProductStore{product: store.Product{ID: 1, Name: "Widget"}},
			expected:  &ProductDto{ID: 1, Name: "Widget"},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: serrors.ErrProductNotFound},
			expectError: serrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			removed, err := service.DeleteByID(context.Background(), 1)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, removed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, removed)
		})
	}
}

func Test_ProductService_Stats(t *testing.T) {
	// given
	mockStore := &mockProductStore{
		stats: store.Stats{TotalProducts: 2, TotalStock: 5, TotalValue: 50, Categories: 2, LowStockProducts: 2},
	}
	service := NewService(mockStore)
	// when
	stats, err := service.Stats(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, &StatsDto{TotalProducts: 2, TotalStock: 5, TotalValue: 50, Categories: 2, LowStockProducts: 2}, stats)
}

func Test_ProductDraft_Normalize(t *testing.T) {
	draft := draftOf("  Widget ", "\tTools\n", 1, 1, " Acme ")
	draft.Normalize()
	assert.Equal(t, "Widget", draft.Name)
	assert.Equal(t, "Tools", draft.Category)
	assert.Equal(t, "Acme", draft.Supplier)
}
