// Package remove реализует HTTP-обработчик удаления строки корзины.
package remove

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
)

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Handler обрабатывает HTTP-запросы удаления строки корзины.
type Handler struct {
	log      *slog.Logger
	carts    Carts
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и реестром корзин.
func New(log *slog.Logger, carts Carts) *Handler {
	return &Handler{
		log:      log,
		carts:    carts,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Удалить строку корзины
// @Description Удаляет строку корзины целиком вне зависимости от количества.
// @Tags Cart
// @Produce  json
// @Param lineID path string true "Идентификатор строки корзины"
// @Success 200 {object} map[string]any "Итоги корзины"
// @Failure 404 {object} response.ErrorResponse "Строка не найдена"
// @Failure 422 {object} response.ErrorResponse "Некорректный идентификатор строки"
// @Router /cart/items/{lineID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lineID := chi.URLParam(r, "lineID")
	if err := h.validate.Var(lineID, "required,uuid"); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid line id"))
		return
	}

	sid := middlewarectx.SessionFromContext(r.Context())
	c := h.carts.Get(sid)
	if !c.Remove(lineID) {
		log.Info("cart line not found", slog.String("line_id", lineID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("cart line not found"))
		return
	}

	log.Info("cart line removed", slog.String("line_id", lineID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lines":          c.Lines(),
		"total_quantity": c.TotalQuantity(),
		"subtotal":       c.Subtotal(),
	}))
}
