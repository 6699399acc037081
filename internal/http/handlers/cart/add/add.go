// Package add реализует HTTP-обработчик добавления товара в корзину.
//
// Товар ищется в снапшоте каталога по идентификатору, и в корзину
// попадает его копия: дальнейшие изменения каталога не затрагивают
// цену уже добавленной строки. Повторное добавление того же товара
// наращивает количество существующей строки.
package add

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Request — структура входных данных добавления товара.
type Request struct {
	ProductID int `json:"productID" validate:"required,gt=0"`
}

// Catalog описывает чтение снапшота товаров.
type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Carts выдаёт корзину сессии.
type Carts interface {
	Get(sessionID string) *cart.Cart
}

// Handler обрабатывает HTTP-запросы на добавление товара в корзину.
type Handler struct {
	log      *slog.Logger
	catalog  Catalog
	carts    Carts
	validate *validator.Validate
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, catalog Catalog, carts Carts) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalog,
		carts:    carts,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить товар в корзину
// @Description Добавляет товар в корзину текущей сессии либо наращивает количество существующей строки.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор товара"
// @Success 200 {object} map[string]any "Затронутая строка корзины"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Каталог недоступен"
// @Router /cart/items [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	products, err := h.catalog.Products(r.Context())
	if err != nil {
		log.Error("failed to load products", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("catalog is unavailable"))
		return
	}

	var product *models.Product
	for i := range products {
		if products[i].ProductID == req.ProductID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		log.Info("product not found", slog.Int("product_id", req.ProductID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}

	sid := middlewarectx.SessionFromContext(r.Context())
	c := h.carts.Get(sid)
	line := c.Add(*product)

	log.Info("product added to cart", slog.Int("product_id", req.ProductID),
		slog.Int("quantity", line.Quantity))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"line":           line,
		"total_quantity": c.TotalQuantity(),
		"subtotal":       c.Subtotal(),
	}))
}
