package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velmurzaev/storefront-console/internal/models"
)

func TestDecide(t *testing.T) {
	admin := &models.Principal{ID: 1, Username: "root", Role: "admin"}
	user := &models.Principal{ID: 2, Username: "masha", Role: "user"}

	tests := []struct {
		name     string
		p        *models.Principal
		rule     models.Rule
		expected Decision
	}{
		{
			name:     "нет пользователя — на вход",
			p:        nil,
			rule:     models.Rule{},
			expected: RedirectTo(LoginPath),
		},
		{
			name:     "нет пользователя и маршрут с ролью — на вход",
			p:        nil,
			rule:     models.Rule{RequiredRole: "admin"},
			expected: RedirectTo(LoginPath),
		},
		{
			name:     "маршрут без требуемой роли доступен всем",
			p:        user,
			rule:     models.Rule{},
			expected: Allow,
		},
		{
			name:     "админ на админском маршруте",
			p:        admin,
			rule:     models.Rule{RequiredRole: "admin"},
			expected: Allow,
		},
		{
			name:     "роль сравнивается без учёта регистра",
			p:        &models.Principal{ID: 3, Username: "ops", Role: "Admin"},
			rule:     models.Rule{RequiredRole: "ADMIN"},
			expected: Allow,
		},
		{
			name:     "пользователь на админском маршруте — мягко на витрину",
			p:        user,
			rule:     models.Rule{RequiredRole: "admin"},
			expected: RedirectTo(StorePath),
		},
		{
			name:     "нераспознанная роль — как неаутентифицированный",
			p:        &models.Principal{ID: 4, Username: "ghost", Role: "superuser"},
			rule:     models.Rule{RequiredRole: "admin"},
			expected: RedirectTo(LoginPath),
		},
		{
			name:     "пустая роль — как неаутентифицированный",
			p:        &models.Principal{ID: 5, Username: "empty", Role: ""},
			rule:     models.Rule{RequiredRole: "admin"},
			expected: RedirectTo(LoginPath),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.p, tt.rule))
		})
	}
}

func TestDecide_NoSideEffects(t *testing.T) {
	p := &models.Principal{ID: 1, Username: "masha", Role: "user"}
	before := *p

	_ = Decide(p, models.Rule{RequiredRole: "admin"})

	assert.Equal(t, before, *p)
}
