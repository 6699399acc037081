// Package guard реализует решение о допуске к маршруту по закешированной
// идентичности и требуемой роли маршрута.
//
// Функция решения чистая: без сети, без побочных эффектов, только
// по уже прочитанному principal. Это удобство навигации, а не граница
// безопасности — реальную авторизацию выполняет бекенд по токену.
package guard

import (
	"strings"

	"github.com/velmurzaev/storefront-console/internal/models"
)

// Пути перенаправлений защитника.
const (
	LoginPath = "/login"
	StorePath = "/store"
)

// Decision — результат проверки доступа: либо допуск, либо перенаправление.
type Decision struct {
	Allow    bool
	Location string // Путь перенаправления, заполнен только при Allow == false
}

// Allow — решение о допуске.
var Allow = Decision{Allow: true}

// RedirectTo возвращает решение о перенаправлении на указанный путь.
func RedirectTo(path string) Decision {
	return Decision{Location: path}
}

// Decide принимает решение о допуске к маршруту.
//
// Отсутствующий пользователь перенаправляется на вход. Маршрут без
// требуемой роли доступен любому аутентифицированному пользователю.
// Роли сравниваются без учёта регистра. Обычный пользователь на
// административном маршруте мягко перенаправляется на витрину;
// нераспознанная роль трактуется как отсутствие аутентификации.
func Decide(p *models.Principal, rule models.Rule) Decision {
	if p == nil {
		return RedirectTo(LoginPath)
	}
	if rule.RequiredRole == "" {
		return Allow
	}

	role := strings.ToLower(p.Role)
	if role == strings.ToLower(rule.RequiredRole) {
		return Allow
	}
	if role == models.RoleUser {
		return RedirectTo(StorePath)
	}
	return RedirectTo(LoginPath)
}
