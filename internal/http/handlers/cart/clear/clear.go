// Package clear реализует HTTP-обработчик очистки корзины текущей сессии.
package clear

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
)

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Handler обрабатывает HTTP-запросы очистки корзины.
type Handler struct {
	log   *slog.Logger
	carts Carts
}

// New создает новый Handler с переданными логгером и реестром корзин.
func New(log *slog.Logger, carts Carts) *Handler {
	return &Handler{
		log:   log,
		carts: carts,
	}
}

// ServeHTTP godoc
// @Summary Очистить корзину
// @Description Удаляет все строки корзины текущей сессии.
// @Tags Cart
// @Produce  json
// @Success 200 {object} response.Response "Корзина очищена"
// @Router /cart [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.clear"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	h.carts.Get(sid).Clear()

	log.Info("cart cleared")
	render.JSON(w, r, response.OK())
}
