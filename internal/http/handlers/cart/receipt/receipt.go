// Package receipt реализует HTTP-обработчик текстового чека корзины.
//
// Чек отдаётся как text/plain с моноширинной раскладкой колонок и
// предназначен для печати на стороне клиента.
package receipt

import (
	"log/slog"
	"net/http"

	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
)

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Handler обрабатывает HTTP-запросы чека корзины.
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
// @Summary Чек корзины
// @Description Возвращает текстовый чек по текущей корзине для печати.
// @Tags Cart
// @Produce  plain
// @Success 200 {string} string "Текстовый чек"
// @Router /cart/receipt [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sid := middlewarectx.SessionFromContext(r.Context())
	c := h.carts.Get(sid)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(c.Receipt()))
}
