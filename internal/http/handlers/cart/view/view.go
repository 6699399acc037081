// Package view реализует HTTP-обработчик просмотра корзины текущей сессии.
package view

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Checkout сообщает состояние попытки оформления заказа.
type Checkout interface {
	State(sessionID string) models.CheckoutState
}

// Handler обрабатывает HTTP-запросы просмотра корзины.
type Handler struct {
	log      *slog.Logger
	carts    Carts
	checkout Checkout
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, carts Carts, checkout Checkout) *Handler {
	return &Handler{
		log:      log,
		carts:    carts,
		checkout: checkout,
	}
}

// ServeHTTP godoc
// @Summary Корзина текущей сессии
// @Description Возвращает строки корзины, итоги и состояние оформления заказа.
// @Tags Cart
// @Produce  json
// @Success 200 {object} map[string]any "Содержимое корзины"
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sid := middlewarectx.SessionFromContext(r.Context())
	c := h.carts.Get(sid)

	render.JSON(w, r, response.OKWithData(map[string]any{
		"lines":          c.Lines(),
		"total_quantity": c.TotalQuantity(),
		"subtotal":       c.Subtotal(),
		"total":          c.Total(),
		"checkout_state": h.checkout.State(sid),
	}))
}
