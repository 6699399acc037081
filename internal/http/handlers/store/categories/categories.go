// Package categories реализует HTTP-обработчик списка категорий витрины.
package categories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Service описывает чтение снапшота категорий.
type Service interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// Handler обрабатывает HTTP-запросы списка категорий.
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
// @Summary Категории витрины
// @Description Возвращает список категорий каталога.
// @Tags Store
// @Produce  json
// @Success 200 {object} map[string]any "Список категорий"
// @Failure 502 {object} response.ErrorResponse "Каталог недоступен"
// @Router /store/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.store.categories"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		log.Error("failed to load categories", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("catalog is unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"categories": categories,
	}))
}
