// Package storefrontconsole собирает HTTP-сервис консоли витрины:
// подключение к redis, клиент бекенда, сервисы каталога, корзины и
// оформления заказа, маршруты и жизненный цикл сервера.
package storefrontconsole

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/velmurzaev/storefront-console/internal/backend"
	"github.com/velmurzaev/storefront-console/internal/cache"
	"github.com/velmurzaev/storefront-console/internal/cart"
	"github.com/velmurzaev/storefront-console/internal/catalog"
	"github.com/velmurzaev/storefront-console/internal/checkout"
	"github.com/velmurzaev/storefront-console/internal/config"
	"github.com/velmurzaev/storefront-console/internal/identity"
	"github.com/velmurzaev/storefront-console/internal/lib/jwt"
	"github.com/velmurzaev/storefront-console/internal/lib/rabbitmq"
	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	cache  *cache.Cache
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	backendClient := backend.NewClient(cfg.BackendAPI.AddressAPI, cfg.BackendAPI.TimeoutAPI)

	identityCache := identity.New(cacheRedis, cfg.SessionToken.SessionTTL, logger)
	catalogService := catalog.NewService(backendClient, cacheRedis, cfg.CatalogTTL, logger)
	carts := cart.NewRegistry()

	// Сброс идентичности сессии всегда тянет за собой её корзину:
	// и при выходе, и при любой другой очистке.
	identityCache.Subscribe(func(sessionID string, p *models.Principal) {
		if p == nil {
			carts.Drop(sessionID)
		}
	})

	// Брокер событий опционален: без него заказы фиксируются, но
	// событие о фиксации никуда не публикуется.
	var events checkout.Events
	if cfg.Rabbit.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.Rabbit.RabbitURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, cfg.Rabbit.OrdersQueue)
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch, cfg.Rabbit.OrdersQueue)
	} else {
		logger.Warn("rabbitmq url is empty, order events will not be published")
	}

	checkoutService := checkout.NewService(backendClient, identityCache, carts, events, logger)

	sessionMaker := jwt.NewSessionMaker(cfg.SessionToken.SecretKey, cfg.SessionToken.SessionTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, routeDeps{
		backend:  backendClient,
		cache:    cacheRedis,
		identity: identityCache,
		catalog:  catalogService,
		carts:    carts,
		checkout: checkoutService,
		sessions: sessionMaker,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  cacheRedis,
	}, nil
}

// Run запускает сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.cache.Db.Close(); cerr != nil {
			a.logger.Error("failed to close redis client", sl.Err(cerr))
		}
		return err
	}
}
