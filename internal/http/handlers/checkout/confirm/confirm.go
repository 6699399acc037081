// Package confirm реализует HTTP-обработчик подтверждения заказа:
// отправку покупки и отчёта на бекенд единой попыткой.
//
// Любая ошибка фиксации скрывается за одним общим сообщением: клиенту
// не сообщается, на каком из двух вызовов бекенда попытка оборвалась.
package confirm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/checkout"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Service описывает подтверждение заказа.
type Service interface {
	Confirm(ctx context.Context, sessionID string) (*models.CheckoutAttempt, error)
}

// Handler обрабатывает HTTP-запросы подтверждения заказа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом оформления.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтвердить заказ
// @Description Отправляет покупку и отчёт на бекенд. Повторное подтверждение во время отправки отклоняется.
// @Tags Checkout
// @Produce  json
// @Success 200 {object} map[string]any "Заказ зафиксирован"
// @Failure 202 {object} response.ErrorResponse "Отправка уже выполняется"
// @Failure 401 {object} response.ErrorResponse "Сессия не аутентифицирована"
// @Failure 409 {object} response.ErrorResponse "Подтверждение вне последовательности оформления"
// @Failure 502 {object} response.ErrorResponse "Заказ не подтверждён"
// @Router /checkout/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.confirm"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	attempt, err := h.service.Confirm(r.Context(), sid)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSubmitting):
			log.Info("confirm rejected, submission in progress")
			w.WriteHeader(http.StatusAccepted)
			render.JSON(w, r, response.Error("order submission already in progress"))
		case errors.Is(err, checkout.ErrOutOfSequence):
			log.Info("confirm rejected, no pending checkout")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("no checkout to confirm"))
		case errors.Is(err, checkout.ErrCartEmpty):
			log.Info("confirm rejected, cart is empty")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("cart is empty"))
		case errors.Is(err, checkout.ErrNotAuthenticated):
			log.Info("confirm rejected, session is not authenticated")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("must be logged in"))
		default:
			log.Error("confirm failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("order was not confirmed, please try again"))
		}
		return
	}

	log.Info("order committed", slog.String("attempt_id", attempt.AttemptID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"attempt_id": attempt.AttemptID,
		"total":      attempt.Total,
		"state":      attempt.State,
	}))
}
