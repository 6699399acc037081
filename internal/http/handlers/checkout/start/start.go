// Package start реализует HTTP-обработчик начала оформления заказа:
// перевод сессии в состояние подтверждения перед отправкой.
package start

import (
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

// Service описывает начало оформления заказа.
type Service interface {
	Checkout(sessionID string) error
	State(sessionID string) models.CheckoutState
}

// Handler обрабатывает HTTP-запросы начала оформления.
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
// @Summary Начать оформление заказа
// @Description Переводит сессию в состояние подтверждения заказа. Пустая корзина оформление не начинает.
// @Tags Checkout
// @Produce  json
// @Success 200 {object} map[string]any "Состояние оформления"
// @Failure 202 {object} response.ErrorResponse "Предыдущая отправка ещё выполняется"
// @Failure 409 {object} response.ErrorResponse "Корзина пуста"
// @Router /checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	if err := h.service.Checkout(sid); err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartEmpty):
			log.Info("checkout rejected, cart is empty")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("cart is empty"))
		case errors.Is(err, checkout.ErrSubmitting):
			log.Info("checkout rejected, submission in progress")
			w.WriteHeader(http.StatusAccepted)
			render.JSON(w, r, response.Error("order submission already in progress"))
		default:
			log.Error("checkout failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not start checkout"))
		}
		return
	}

	log.Info("checkout started")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"checkout_state": h.service.State(sid),
	}))
}
