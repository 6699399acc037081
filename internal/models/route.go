package models

// Rule — статические метаданные авторизации маршрута, потребляемые
// защитником навигации. Пустой RequiredRole означает, что маршруту
// достаточно любой аутентифицированной сессии.
type Rule struct {
	RequiredRole string
}
