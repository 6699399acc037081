// Package identity реализует кеш идентичности: сессионное хранилище
// аутентифицированного пользователя и его токена бекенда.
//
// Записывается один раз при входе, читается защитником навигации и
// оформлением заказа, очищается при выходе. Повреждённое сохранённое
// значение деградирует до отсутствия пользователя и никогда не
// возвращается вызывающему как ошибка.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/velmurzaev/storefront-console/internal/lib/sl"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// KV описывает методы персистентного key/value-слоя.
type KV interface {
	// Get пытается получить значение из хранилища по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Del удаляет перечисленные ключи одной командой.
	Del(ctx context.Context, keys ...string) error
}

// Listener — обратный вызов об изменении идентичности сессии.
// Вызывается синхронно из SetPrincipal и Clear; nil означает выход.
type Listener func(sessionID string, p *models.Principal)

// Cache реализует кеш идентичности поверх key/value-слоя.
type Cache struct {
	kv  KV
	ttl time.Duration
	log *slog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// New создаёт кеш идентичности с временем жизни записей ttl.
func New(kv KV, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{kv: kv, ttl: ttl, log: log}
}

func principalKey(sessionID string) string { return fmt.Sprintf("session:%s:principal", sessionID) }
func tokenKey(sessionID string) string     { return fmt.Sprintf("session:%s:token", sessionID) }

// SetPrincipal сохраняет пользователя и токен бекенда для сессии.
// Возвращает управление только после записи обоих значений: проверка
// авторизации, запущенная редиректом сразу после входа, обязана увидеть
// нового пользователя. Подписчики уведомляются синхронно.
func (c *Cache) SetPrincipal(ctx context.Context, sessionID string, p models.Principal, token string) error {
	const op = "identity.SetPrincipal"
	if err := c.kv.Set(ctx, principalKey(sessionID), p, c.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.kv.Set(ctx, tokenKey(sessionID), token, c.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.notify(sessionID, &p)
	return nil
}

// Principal возвращает пользователя сессии либо nil, если запись
// отсутствует или не читается. Ошибки чтения не пробрасываются:
// для защитника навигации они неотличимы от отсутствия пользователя.
func (c *Cache) Principal(ctx context.Context, sessionID string) *models.Principal {
	var p models.Principal
	found, err := c.kv.Get(ctx, principalKey(sessionID), &p)
	if err != nil {
		c.log.Warn("failed to read cached principal, treating as unauthenticated", sl.Err(err))
		return nil
	}
	if !found {
		return nil
	}
	return &p
}

// Token возвращает токен бекенда для сессии либо пустую строку.
func (c *Cache) Token(ctx context.Context, sessionID string) string {
	var token string
	found, err := c.kv.Get(ctx, tokenKey(sessionID), &token)
	if err != nil || !found {
		if err != nil {
			c.log.Warn("failed to read cached token", sl.Err(err))
		}
		return ""
	}
	return token
}

// Clear удаляет пользователя и токен сессии одной командой, чтобы
// последующие чтения не увидели частичного состояния.
func (c *Cache) Clear(ctx context.Context, sessionID string) error {
	const op = "identity.Clear"
	if err := c.kv.Del(ctx, principalKey(sessionID), tokenKey(sessionID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.notify(sessionID, nil)
	return nil
}

// Subscribe регистрирует подписчика на изменения идентичности.
func (c *Cache) Subscribe(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Cache) notify(sessionID string, p *models.Principal) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, fn := range c.listeners {
		fn(sessionID, p)
	}
}
