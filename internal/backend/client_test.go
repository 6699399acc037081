package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmurzaev/storefront-console/internal/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 2*time.Second), srv
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantToken   string
		wantRole    string
	}{
		{
			name:      "успешный вход",
			status:    http.StatusOK,
			body:      `{"token":"opaque-token","user":{"id":7,"username":"masha","role":"admin"}}`,
			wantToken: "opaque-token",
			wantRole:  "admin",
		},
		{
			name:    "неверные учётные данные",
			status:  http.StatusUnauthorized,
			body:    `{"message":"bad credentials"}`,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "ошибка сервера",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/login", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := client.Login(context.Background(), "masha", "secret123")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, resp.Token)
			assert.Equal(t, tt.wantRole, resp.User.Role)
		})
	}
}

func TestClient_GetProducts(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product", r.URL.Path)
		_, _ = w.Write([]byte(`[{"productID":1,"productName":"Tea","price":10.5,"categoryID":2,"stock":3,"status":true}]`))
	}))
	defer srv.Close()

	products, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 1, products[0].ProductID)
	assert.Equal(t, "Tea", products[0].ProductName)
	assert.InDelta(t, 10.5, products[0].Price, 0.0001)
}

func TestClient_GetProducts_Unavailable(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.GetProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_CreatePurchase(t *testing.T) {
	order := models.Order{
		UserID:   7,
		Username: "masha",
		Items:    []models.PurchaseItem{{ProductID: 1, Qty: 2}},
		Total:    21.0,
	}

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:   "покупка записана",
			status: http.StatusCreated,
			body:   `{"purchaseID":42,"message":"ok"}`,
		},
		{
			name:    "недостаточно товара",
			status:  http.StatusConflict,
			body:    `{"message":"insufficient stock"}`,
			wantErr: ErrRejected,
		},
		{
			name:    "бекенд недоступен",
			status:  http.StatusServiceUnavailable,
			body:    `{}`,
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/purchase", r.URL.Path)
				assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			ack, err := client.CreatePurchase(context.Background(), "tok-1", order)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 42, ack.PurchaseID)
		})
	}
}

func TestClient_CreateReport(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/report", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"message":"created","report":{"reportID":5,"userID":7,"username":"masha","totalAmount":21}}`))
	}))
	defer srv.Close()

	resp, err := client.CreateReport(context.Background(), "tok-1", models.Order{UserID: 7, Username: "masha", Total: 21})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Report.ReportID)
	assert.InDelta(t, 21.0, resp.Report.TotalAmount, 0.0001)
}

func TestClient_NetworkFailure(t *testing.T) {
	// Сервер закрыт сразу: любой вызов должен вернуть ErrUnavailable,
	// а не сырую сетевую ошибку.
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := client.GetCategories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.CreateReport(context.Background(), "tok", models.Order{})
	assert.ErrorIs(t, err, ErrUnavailable)
}
