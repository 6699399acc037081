package models

// CartLine представляет одну строку корзины: копию товара и количество.
// Инварианты: на один ProductID приходится не более одной строки,
// Quantity всегда >= 1. LineID присваивается при добавлении и служит
// идентичностью строки — удаление выполняется по LineID, а не по товару.
type CartLine struct {
	LineID   string  `json:"lineID"`   // Идентичность строки, uuid
	Product  Product `json:"product"`  // Копия товара на момент добавления
	Quantity int     `json:"quantity"` // Количество, >= 1
}

// PurchaseItem — позиция заказа, передаваемая бекенду при оформлении.
type PurchaseItem struct {
	ProductID int `json:"productID"`
	Qty       int `json:"qty"`
}

// Order — снимок заказа для двухшаговой записи (покупка, затем отчёт).
// Снимается один раз при подтверждении и передаётся в оба вызова без изменений.
type Order struct {
	UserID   int            `json:"userID"`
	Username string         `json:"username"`
	Items    []PurchaseItem `json:"items"`
	Total    float64        `json:"total"`
}
