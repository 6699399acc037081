package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmurzaev/storefront-console/internal/lib/jwt"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// principalFake отдаёт пользователей по известным идентификаторам сессий.
type principalFake struct {
	principals map[string]*models.Principal
}

func (f *principalFake) Principal(_ context.Context, sessionID string) *models.Principal {
	return f.principals[sessionID]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func requestWithSession(sid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if sid != "" {
		req = req.WithContext(context.WithValue(req.Context(), SessionID, sid))
	}
	return req
}

func TestGuardMiddleware(t *testing.T) {
	identity := &principalFake{principals: map[string]*models.Principal{
		"sid-admin": {ID: 1, Username: "root", Role: "admin"},
		"sid-user":  {ID: 2, Username: "masha", Role: "user"},
		"sid-ghost": {ID: 3, Username: "ghost", Role: "superuser"},
	}}

	tests := []struct {
		name         string
		sid          string
		rule         models.Rule
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "админ на админском маршруте допущен",
			sid:        "sid-admin",
			rule:       models.Rule{RequiredRole: "admin"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "маршрут без роли доступен пользователю",
			sid:        "sid-user",
			rule:       models.Rule{},
			wantStatus: http.StatusOK,
		},
		{
			name:         "пользователь на админском маршруте — на витрину",
			sid:          "sid-user",
			rule:         models.Rule{RequiredRole: "admin"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/store",
		},
		{
			name:         "без сессии — на вход",
			sid:          "",
			rule:         models.Rule{},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:         "неизвестная сессия — на вход",
			sid:          "sid-unknown",
			rule:         models.Rule{},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
		{
			name:         "нераспознанная роль — на вход",
			sid:          "sid-ghost",
			rule:         models.Rule{RequiredRole: "admin"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := GuardMiddleware(discardLogger(), identity, tt.rule)(okHandler())

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithSession(tt.sid))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
				assert.Contains(t, rec.Body.String(), tt.wantLocation)
			}
		})
	}
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	maker := jwt.NewSessionMaker("secret", time.Hour)
	token, err := maker.GenerateToken("sid-42")
	require.NoError(t, err)

	var gotSID string
	handler := SessionMiddleware(maker, discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotSID = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "sid-42", gotSID)
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	maker := jwt.NewSessionMaker("secret", time.Hour)

	var gotSID string
	handler := SessionMiddleware(maker, discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotSID = SessionFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/store", nil))

	assert.Empty(t, gotSID)
}

func TestSessionMiddleware_TamperedToken(t *testing.T) {
	maker := jwt.NewSessionMaker("secret", time.Hour)
	token, err := maker.GenerateToken("sid-42")
	require.NoError(t, err)

	var gotSID string
	handler := SessionMiddleware(maker, discardLogger())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotSID = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token + "tampered"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Подделанный токен равносилен отсутствию сессии.
	assert.Empty(t, gotSID)
}
