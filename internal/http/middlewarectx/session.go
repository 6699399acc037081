// Package middlewarectx содержит HTTP middleware консоли витрины:
// разбор сессионного токена, защитник навигации и ограничитель частоты.
//
// SessionMiddleware разбирает сессионный токен из cookie, проверяет его
// подпись и кладёт идентификатор сессии в контекст запроса. Отсутствие
// или негодность токена не является ошибкой на этом слое: решение о
// допуске принимает защитник навигации.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/velmurzaev/storefront-console/internal/lib/jwt"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionID — ключ для идентификатора сессии в контексте.
const SessionID Key = "session_id"

// SessionCookie — имя cookie с сессионным токеном.
const SessionCookie = "storefront_session"

// SessionFromContext возвращает идентификатор сессии из контекста запроса.
func SessionFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(SessionID).(string)
	return sid
}

// SessionMiddleware возвращает middleware, который разбирает сессионный
// токен и добавляет идентификатор сессии в контекст запроса.
func SessionMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := maker.ParseToken(cookie.Value)
			if err != nil {
				log.Debug("invalid session token, continuing unauthenticated",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
