// Package catalog реализует снапшот каталога: чтение товаров и категорий
// из бекенда со сквозным кешированием и вспомогательные функции фильтрации
// и пагинации для витрины.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Ключи кеша снапшота каталога.
const (
	productsKey   = "catalog:products"
	categoriesKey = "catalog:categories"
)

// Backend описывает операции чтения каталога из бекенда.
type Backend interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// Cache описывает методы для кэширования снапшота.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт снапшот каталога, сначала пробуя кеш.
type Service struct {
	backend Backend
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(backend Backend, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		backend: backend,
		cache:   cache,
		ttl:     ttl,
		log:     log,
	}
}

// Products возвращает товары каталога, используя кеш или бекенд.
// Ошибка записи в кеш не мешает отдать свежие данные.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	const op = "catalog.Products"
	var cached []models.Product
	found, err := s.cache.Get(ctx, productsKey, &cached)
	if err != nil {
		s.log.Warn("failed to read products from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	products, err := s.backend.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, productsKey, products, s.ttl); err != nil {
		s.log.Warn("failed to cache products", slog.String("key", productsKey), sl.Err(err))
	}
	return products, nil
}

// Categories возвращает категории каталога, используя кеш или бекенд.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	const op = "catalog.Categories"
	var cached []models.Category
	found, err := s.cache.Get(ctx, categoriesKey, &cached)
	if err != nil {
		s.log.Warn("failed to read categories from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	categories, err := s.backend.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, categoriesKey, categories, s.ttl); err != nil {
		s.log.Warn("failed to cache categories", slog.String("key", categoriesKey), sl.Err(err))
	}
	return categories, nil
}

// Filter отбирает товары по категории и поисковой строке.
// Пустая категория и пустой поиск пропускают все товары.
func Filter(products []models.Product, category, search string) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	search = strings.ToLower(search)
	for _, p := range products {
		if category != "" && p.CategoryName != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.ProductName), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Paginate возвращает страницу списка товаров и общее число страниц.
// Номер страницы за пределами диапазона прижимается к границе.
func Paginate(products []models.Product, page, pageSize int) ([]models.Product, int) {
	if pageSize <= 0 {
		pageSize = 8
	}
	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start >= len(products) {
		return []models.Product{}, totalPages
	}
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages
}
