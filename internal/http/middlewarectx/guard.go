package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/velmurzaev/storefront-console/internal/guard"
	"github.com/velmurzaev/storefront-console/internal/http/response"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// PrincipalReader описывает чтение закешированного пользователя сессии.
type PrincipalReader interface {
	Principal(ctx context.Context, sessionID string) *models.Principal
}

// GuardMiddleware возвращает middleware защитника навигации для маршрута
// с заданным правилом доступа.
//
// Перед показом защищённого маршрута пользователь читается из кеша
// идентичности (nil-безопасно) и решение принимает guard.Decide.
// При отказе клиент получает 303 See Other с заголовком Location и
// JSON-телом с тем же путём перенаправления.
func GuardMiddleware(log *slog.Logger, identity PrincipalReader, rule models.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Guard"

			sid := SessionFromContext(r.Context())
			var p *models.Principal
			if sid != "" {
				p = identity.Principal(r.Context(), sid)
			}

			decision := guard.Decide(p, rule)
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}

			log.Info("navigation redirected",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
				slog.String("location", decision.Location))

			w.Header().Set("Location", decision.Location)
			w.WriteHeader(http.StatusSeeOther)
			render.JSON(w, r, response.Redirect(decision.Location))
		})
	}
}
