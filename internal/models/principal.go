// Package models содержит доменные структуры витрины магазина:
// аутентифицированного пользователя, товары и категории каталога,
// строки корзины и состояния оформления заказа.
package models

// Principal представляет аутентифицированного пользователя,
// закешированного на стороне консоли после успешного входа.
// Роль ограничена закрытым набором значений: admin или user;
// любая другая роль трактуется как отсутствие аутентификации.
type Principal struct {
	ID       int    `json:"id"`        // Идентификатор пользователя в бекенде
	Username string `json:"username"`  // Имя пользователя
	Role     string `json:"role"`      // Роль: admin или user
	ImageURL string `json:"image_url"` // Ссылка на аватар (опционально)
}

// Известные роли пользователей.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
