package models

import "time"

// CheckoutState описывает состояние попытки оформления заказа.
type CheckoutState string

// Состояния попытки оформления. Committed и Failed терминальны:
// новая попытка начинается заново из Idle.
const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutConfirming CheckoutState = "confirming"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutCommitted  CheckoutState = "committed"
	CheckoutFailed     CheckoutState = "failed"
)

// CheckoutAttempt — эфемерная запись одной попытки оформления заказа.
// Живёт только в памяти на время попытки и никуда не сохраняется.
type CheckoutAttempt struct {
	AttemptID string         // Идентификатор попытки, uuid
	Principal Principal      // Снимок пользователя на момент подтверждения
	Items     []PurchaseItem // Снимок позиций корзины
	Total     float64        // Посчитанная сумма заказа
	StartedAt time.Time      // Время начала попытки
	State     CheckoutState  // Текущее состояние
}

// Report — запись отчёта о продаже, возвращаемая бекендом.
type Report struct {
	ReportID     int          `json:"reportID"`
	UserID       int          `json:"userID"`
	Username     string       `json:"username"`
	Items        []ReportItem `json:"items"`
	TotalAmount  float64      `json:"totalAmount"`
	PurchaseDate string       `json:"purchase_date"`
	CreateDate   string       `json:"create_date"`
}

// ReportItem — позиция отчёта о продаже.
type ReportItem struct {
	ProductID   int     `json:"productID"`
	ProductName string  `json:"productName"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"totalPrice"`
}
