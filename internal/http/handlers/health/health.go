// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/http/response"
)

// Pinger описывает проверку доступности хранилища сессий.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы проверки живости.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
}

// New создает новый Handler с переданными логгером и проверкой хранилища.
func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Description Возвращает статус сервиса и доступность хранилища сессий.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервис работает"
// @Failure 503 {object} response.ErrorResponse "Хранилище сессий недоступно"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("session store is unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "alive",
	}))
}
