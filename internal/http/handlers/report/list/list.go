// Package list реализует HTTP-обработчик списка отчётов о продажах.
//
// Операция доступна только администраторам и ходит на бекенд с токеном
// текущей сессии: отчёты не кешируются, админ всегда видит свежие данные.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Service описывает чтение отчётов с бекенда.
type Service interface {
	GetReports(ctx context.Context, token string) ([]models.Report, error)
}

// Identity описывает чтение токена бекенда для сессии.
type Identity interface {
	Token(ctx context.Context, sessionID string) string
}

// Handler обрабатывает HTTP-запросы списка отчётов.
type Handler struct {
	log      *slog.Logger
	service  Service
	identity Identity
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, service Service, identity Identity) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		identity: identity,
	}
}

// ServeHTTP godoc
// @Summary Отчёты о продажах
// @Description Возвращает список отчётов о продажах. Только для администраторов.
// @Tags Report
// @Produce  json
// @Success 200 {object} map[string]any "Список отчётов"
// @Failure 401 {object} response.ErrorResponse "Сессия не аутентифицирована"
// @Failure 502 {object} response.ErrorResponse "Бекенд недоступен"
// @Router /report [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	token := h.identity.Token(r.Context(), sid)
	if token == "" {
		log.Info("report rejected, no backend token for session")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("must be logged in"))
		return
	}

	reports, err := h.service.GetReports(r.Context(), token)
	if err != nil {
		log.Error("failed to load reports", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("reports are unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"reports": reports,
	}))
}
