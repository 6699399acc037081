// Package backend реализует HTTP-клиент административного бекенда магазина.
//
// Бекенд для консоли — чёрный ящик: вход, каталог, запись покупки и отчёта.
// Клиент различает только типизированные классы ошибок: неверные учётные
// данные, отклонённую запись и недоступность сервиса.
package backend

import (
	"errors"

	"github.com/velmurzaev/storefront-console/internal/models"
)

// Типизированные ошибки бекенда.
var (
	// ErrUnauthorized — неверные учётные данные при входе.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRejected — бекенд отклонил запись (например, недостаточно товара).
	ErrRejected = errors.New("rejected by backend")
	// ErrUnavailable — сетевая ошибка или ошибка сервера.
	ErrUnavailable = errors.New("backend unavailable")
)

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse — ответ бекенда на вход: токен и данные пользователя.
type LoginResponse struct {
	Token string           `json:"token"`
	User  models.Principal `json:"user"`
}

// PurchaseAck — подтверждение записи покупки.
type PurchaseAck struct {
	PurchaseID int    `json:"purchaseID"`
	Message    string `json:"message"`
}

// ReportResponse — ответ бекенда на создание отчёта.
type ReportResponse struct {
	Message string        `json:"message"`
	Report  models.Report `json:"report"`
}
