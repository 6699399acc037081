// Package products реализует HTTP-обработчик витрины: страница товаров
// каталога с фильтром по категории и поисковой строке.
package products

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/catalog"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

const defaultPageSize = 8

// Service описывает чтение снапшота товаров.
type Service interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Handler обрабатывает HTTP-запросы списка товаров витрины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом каталога.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Товары витрины
// @Description Возвращает страницу товаров каталога с фильтрацией по категории и поиску по названию.
// @Tags Store
// @Produce  json
// @Param category query string false "Название категории"
// @Param search query string false "Поисковая строка"
// @Param page query int false "Номер страницы, с 1"
// @Success 200 {object} map[string]any "Страница товаров"
// @Failure 502 {object} response.ErrorResponse "Каталог недоступен"
// @Router /store/products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.products"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	products, err := h.service.Products(r.Context())
	if err != nil {
		log.Error("failed to load products", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("catalog is unavailable"))
		return
	}

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	filtered := catalog.Filter(products, category, search)
	pageItems, totalPages := catalog.Paginate(filtered, page, defaultPageSize)

	render.JSON(w, r, response.OKWithData(map[string]any{
		"products":    pageItems,
		"total_pages": totalPages,
		"total_found": len(filtered),
	}))
}
