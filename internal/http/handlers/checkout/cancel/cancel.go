// Package cancel реализует HTTP-обработчик отказа от оформления заказа.
package cancel

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
)

// Service описывает отказ от оформления заказа.
type Service interface {
	Cancel(sessionID string) error
}

// Handler обрабатывает HTTP-запросы отказа от оформления.
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
// @Summary Отменить оформление заказа
// @Description Сбрасывает текущую попытку оформления. Корзина при этом сохраняется.
// @Tags Checkout
// @Produce  json
// @Success 200 {object} response.Response "Оформление отменено"
// @Failure 202 {object} response.ErrorResponse "Отправка уже выполняется, отмена невозможна"
// @Router /checkout [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	if err := h.service.Cancel(sid); err != nil {
		if errors.Is(err, checkout.ErrSubmitting) {
			log.Info("cancel rejected, submission in progress")
			w.WriteHeader(http.StatusAccepted)
			render.JSON(w, r, response.Error("order submission already in progress"))
			return
		}
		log.Error("cancel failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel checkout"))
		return
	}

	log.Info("checkout cancelled")
	render.JSON(w, r, response.OK())
}
