package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/velmurzaev/storefront-console/internal/models"
)

// Client — HTTP-клиент административного бекенда.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент бекенда с заданным базовым адресом API.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Login выполняет вход по имени пользователя и паролю.
// Возвращает ErrUnauthorized при неверных учётных данных.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	const op = "backend.Login"
	req, err := c.newRequest(ctx, http.MethodPost, "/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, ErrUnavailable)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &loginResp, nil
}

// GetProducts возвращает список товаров каталога.
func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	const op = "backend.GetProducts"
	var products []models.Product
	if err := c.get(ctx, "/product", "", &products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// GetCategories возвращает список категорий каталога.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	const op = "backend.GetCategories"
	var categories []models.Category
	if err := c.get(ctx, "/category", "", &categories); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

// GetReports возвращает все отчёты о продажах. Требует токен администратора.
func (c *Client) GetReports(ctx context.Context, token string) ([]models.Report, error) {
	const op = "backend.GetReports"
	var reports []models.Report
	if err := c.get(ctx, "/report", token, &reports); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reports, nil
}

// CreatePurchase записывает покупку в бекенд: первый шаг двухшагового
// оформления заказа. Возвращает ErrRejected, если бекенд отклонил запись.
func (c *Client) CreatePurchase(ctx context.Context, token string, order models.Order) (*PurchaseAck, error) {
	const op = "backend.CreatePurchase"
	req, err := c.newRequest(ctx, http.MethodPost, "/purchase", token, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%s: %w", op, ErrRejected)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, ErrUnavailable)
	}

	var ack PurchaseAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &ack, nil
}

// CreateReport записывает отчёт о продаже: второй шаг двухшагового
// оформления заказа.
func (c *Client) CreateReport(ctx context.Context, token string, order models.Order) (*ReportResponse, error) {
	const op = "backend.CreateReport"
	req, err := c.newRequest(ctx, http.MethodPost, "/report", token, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: unexpected status %s: %w", op, resp.Status, ErrUnavailable)
	}

	var reportResp ReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&reportResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &reportResp, nil
}

func (c *Client) get(ctx context.Context, path, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s: %w", resp.Status, ErrUnavailable)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
