package models

// Product представляет товар каталога. Корзина хранит копию товара,
// снятую в момент добавления, поэтому последующие обновления каталога
// не меняют цену уже добавленных строк.
type Product struct {
	ProductID    int     `json:"productID"`              // Уникальный стабильный идентификатор товара
	ProductName  string  `json:"productName"`            // Название товара
	Price        float64 `json:"price"`                  // Цена за единицу, неотрицательная
	ProductImage string  `json:"productImage,omitempty"` // Ссылка на изображение
	CategoryID   int     `json:"categoryID"`             // Идентификатор категории
	CategoryName string  `json:"categoryName,omitempty"` // Название категории
	Stock        int     `json:"stock"`                  // Остаток на складе (информационно)
	Description  string  `json:"description,omitempty"`  // Описание
	Status       bool    `json:"status"`                 // Признак активности товара
}

// Category представляет категорию каталога.
type Category struct {
	CategoryID   int    `json:"categoryID"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description,omitempty"`
	Status       bool   `json:"status"`
}
