package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velmurzaev/storefront-console/internal/models"
)

type BackendMock struct{ mock.Mock }

func (m *BackendMock) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *BackendMock) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ProductID: 1, ProductName: "Green Tea", Price: 10, CategoryName: "Drinks"},
		{ProductID: 2, ProductName: "Black Tea", Price: 12, CategoryName: "Drinks"},
		{ProductID: 3, ProductName: "Cookie", Price: 5, CategoryName: "Snacks"},
	}
}

func TestService_Products_CacheMiss(t *testing.T) {
	backend := new(BackendMock)
	cacheMock := new(CacheMock)
	svc := NewService(backend, cacheMock, time.Minute, discardLogger())

	cacheMock.On("Get", mock.Anything, "catalog:products", mock.Anything).Return(false, nil)
	backend.On("GetProducts", mock.Anything).Return(sampleProducts(), nil)
	cacheMock.On("Set", mock.Anything, "catalog:products", mock.Anything, time.Minute).Return(nil)

	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
	backend.AssertExpectations(t)
	cacheMock.AssertExpectations(t)
}

func TestService_Products_BackendError(t *testing.T) {
	backend := new(BackendMock)
	cacheMock := new(CacheMock)
	svc := NewService(backend, cacheMock, time.Minute, discardLogger())

	cacheMock.On("Get", mock.Anything, "catalog:products", mock.Anything).Return(false, nil)
	backend.On("GetProducts", mock.Anything).Return(nil, errors.New("unavailable"))

	_, err := svc.Products(context.Background())
	assert.Error(t, err)
}

func TestService_Products_CacheSetFailureIsNotFatal(t *testing.T) {
	backend := new(BackendMock)
	cacheMock := new(CacheMock)
	svc := NewService(backend, cacheMock, time.Minute, discardLogger())

	cacheMock.On("Get", mock.Anything, "catalog:products", mock.Anything).Return(false, nil)
	backend.On("GetProducts", mock.Anything).Return(sampleProducts(), nil)
	cacheMock.On("Set", mock.Anything, "catalog:products", mock.Anything, time.Minute).
		Return(errors.New("redis down"))

	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestService_Categories_CacheMiss(t *testing.T) {
	backend := new(BackendMock)
	cacheMock := new(CacheMock)
	svc := NewService(backend, cacheMock, time.Minute, discardLogger())

	categories := []models.Category{{CategoryID: 1, CategoryName: "Drinks"}}
	cacheMock.On("Get", mock.Anything, "catalog:categories", mock.Anything).Return(false, nil)
	backend.On("GetCategories", mock.Anything).Return(categories, nil)
	cacheMock.On("Set", mock.Anything, "catalog:categories", mock.Anything, time.Minute).Return(nil)

	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestFilter(t *testing.T) {
	products := sampleProducts()

	tests := []struct {
		name     string
		category string
		search   string
		wantIDs  []int
	}{
		{
			name:    "без фильтров — все товары",
			wantIDs: []int{1, 2, 3},
		},
		{
			name:     "фильтр по категории",
			category: "Drinks",
			wantIDs:  []int{1, 2},
		},
		{
			name:    "поиск без учёта регистра",
			search:  "tea",
			wantIDs: []int{1, 2},
		},
		{
			name:     "категория и поиск вместе",
			category: "Drinks",
			search:   "green",
			wantIDs:  []int{1},
		},
		{
			name:     "ничего не найдено",
			category: "Snacks",
			search:   "tea",
			wantIDs:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(products, tt.category, tt.search)
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ProductID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPaginate(t *testing.T) {
	products := sampleProducts()

	page, total := Paginate(products, 1, 2)
	assert.Len(t, page, 2)
	assert.Equal(t, 2, total)

	page, total = Paginate(products, 2, 2)
	assert.Len(t, page, 1)
	assert.Equal(t, 2, total)

	// Страница за пределами диапазона прижимается к последней.
	page, _ = Paginate(products, 99, 2)
	assert.Len(t, page, 1)

	// Пустой список — одна пустая страница.
	page, total = Paginate(nil, 1, 2)
	assert.Empty(t, page)
	assert.Equal(t, 1, total)
}
