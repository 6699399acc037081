// Package storefrontconsole предоставляет маршруты консоли витрины.
package storefrontconsole

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/velmurzaev/storefront-console/internal/backend"
	"github.com/velmurzaev/storefront-console/internal/cache"
	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/catalog"
	"github.com/velmurzaev/storefront-console/internal/checkout"
	"github.com/velmurzaev/storefront-console/internal/http/handlers/auth/login"
	"github.com/velmurzaev/storefront-console/internal/http/handlers/auth/logout"
	cartadd "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/add"
	cartclear "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/clear"
	cartdecrease "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/decrease"
	cartincrease "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/increase"
	cartreceipt "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/receipt"
	cartremove "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/remove"
	cartview "github.com/velmurzaev/storefront-console/internal/http/handlers/cart/view"
	checkoutcancel "github.com/velmurzaev/storefront-console/internal/http/handlers/checkout/cancel"
	checkoutconfirm "github.com/velmurzaev/storefront-console/internal/http/handlers/checkout/confirm"
	checkoutstart "github.com/velmurzaev/storefront-console/internal/http/handlers/checkout/start"
	"github.com/velmurzaev/storefront-console/internal/http/handlers/health"
	reportlist "github.com/velmurzaev/storefront-console/internal/http/handlers/report/list"
	"github.com/velmurzaev/storefront-console/internal/http/handlers/store/categories"
	"github.com/velmurzaev/storefront-console/internal/http/handlers/store/products"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/identity"
	"github.com/velmurzaev/storefront-console/internal/lib/jwt"
	"github.com/velmurzaev/storefront-console/internal/models"
)

type routeDeps struct {
	backend  *backend.Client
	cache    *cache.Cache
	identity *identity.Cache
	catalog  *catalog.Service
	carts    *cart.Registry
	checkout *checkout.Service
	sessions jwt.Maker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps routeDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, deps.backend, deps.identity, deps.sessions).ServeHTTP)

		// Группа с сессионной cookie и проверкой авторизации маршрута
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(deps.sessions, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, deps.identity, deps.carts).ServeHTTP)

			// Витрина, корзина и оформление: любой вошедший пользователь
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.GuardMiddleware(logger, deps.identity, models.Rule{}))
				r.Get("/store/products", products.New(logger, deps.catalog).ServeHTTP)
				r.Get("/store/categories", categories.New(logger, deps.catalog).ServeHTTP)

				r.Get("/cart", cartview.New(logger, deps.carts, deps.checkout).ServeHTTP)
				r.Delete("/cart", cartclear.New(logger, deps.carts).ServeHTTP)
				r.Post("/cart/items", cartadd.New(logger, deps.catalog, deps.carts).ServeHTTP)
				r.Post("/cart/items/{lineID}/increase", cartincrease.New(logger, deps.carts).ServeHTTP)
				r.Post("/cart/items/{lineID}/decrease", cartdecrease.New(logger, deps.carts).ServeHTTP)
				r.Delete("/cart/items/{lineID}", cartremove.New(logger, deps.carts).ServeHTTP)
				r.Get("/cart/receipt", cartreceipt.New(logger, deps.carts).ServeHTTP)

				r.Post("/checkout", checkoutstart.New(logger, deps.checkout).ServeHTTP)
				r.Delete("/checkout", checkoutcancel.New(logger, deps.checkout).ServeHTTP)
				r.Post("/checkout/confirm", checkoutconfirm.New(logger, deps.checkout).ServeHTTP)
			})

			// Консоль администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.GuardMiddleware(logger, deps.identity, models.Rule{RequiredRole: models.RoleAdmin}))
				r.Get("/report", reportlist.New(logger, deps.backend, deps.identity).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, deps.cache).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
