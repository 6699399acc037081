package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velmurzaev/storefront-console/internal/backend"
	"github.com/velmurzaev/storefront-console/internal/http/middlewarectx"
	"github.com/velmurzaev/storefront-console/internal/models"
)

// Мок клиента бекенда с методом GetReports
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GetReports(ctx context.Context, token string) ([]models.Report, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

// Мок кеша идентичности с методом Token
type IdentityMock struct {
	mock.Mock
}

func (m *IdentityMock) Token(ctx context.Context, sessionID string) string {
	args := m.Called(ctx, sessionID)
	return args.String(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	reports := []models.Report{
		{ReportID: 1, UserID: 7, Username: "buyer", TotalAmount: 12.50},
	}

	tests := []struct {
		name           string
		token          string
		mockReports    []models.Report
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "отчёты возвращаются с токеном сессии",
			token:          "backend-token",
			mockReports:    reports,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "нет токена бекенда для сессии",
			token:          "",
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "must be logged in",
		},
		{
			name:           "бекенд недоступен",
			token:          "backend-token",
			mockErr:        backend.ErrUnavailable,
			wantStatusCode: http.StatusBadGateway,
			wantStatus:     "Error",
			wantError:      "reports are unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			identityMock := new(IdentityMock)
			identityMock.On("Token", mock.Anything, "sid-1").Return(tt.token).Once()
			if tt.token != "" {
				serviceMock.On("GetReports", mock.Anything, tt.token).
					Return(tt.mockReports, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock, identityMock)

			req := httptest.NewRequest(http.MethodGet, "/report", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.SessionID, "sid-1"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				gotReports, ok := data["reports"].([]any)
				require.True(t, ok)
				assert.Len(t, gotReports, 1)
			}

			serviceMock.AssertExpectations(t)
			identityMock.AssertExpectations(t)
		})
	}
}
