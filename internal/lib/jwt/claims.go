// Package jwt реализует выпуск и разбор сессионного токена консоли.
//
// Токен несёт идентификатор сессии (sid) и передаётся клиенту в cookie.
// По sid консоль находит закешированный principal и корзину пользователя.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для указанного идентификатора сессии
	GenerateToken(sessionID string) (string, error)
	// ParseToken возвращает *SessionClaims, если токен корректен
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни сессии (TTL).
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	sessionTTL time.Duration // Время жизни сессии.
}

// NewSessionMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewSessionMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		sessionTTL: ttl,
	}
}
