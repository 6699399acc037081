// Package logout реализует HTTP-обработчик выхода пользователя:
// очистку кеша идентичности, удаление корзины сессии и гашение cookie.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
)

// Identity описывает очистку идентичности сессии.
type Identity interface {
	Clear(ctx context.Context, sessionID string) error
}

// Carts описывает удаление корзины сессии.
type Carts interface {
	Drop(sessionID string)
}

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log      *slog.Logger
	identity Identity
	carts    Carts
}

// New создает новый Handler с переданными зависимостями.
func New(log *slog.Logger, identity Identity, carts Carts) *Handler {
	return &Handler{
		log:      log,
		identity: identity,
		carts:    carts,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет идентичность и корзину текущей сессии, гасит сессионную cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sid := middlewarectx.SessionFromContext(r.Context())
	if sid != "" {
		if err := h.identity.Clear(r.Context(), sid); err != nil {
			// Выход должен завершиться даже при недоступном хранилище:
			// cookie гасится в любом случае.
			log.Error("failed to clear identity", sl.Err(err))
		}
		h.carts.Drop(sid)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("logout complete")
	render.JSON(w, r, response.OK())
}
