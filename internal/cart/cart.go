// Package cart реализует корзину витрины: упорядоченный набор строк
// (товар + количество) с операциями изменения и производными суммами.
//
// Корзина живёт только в памяти на время сессии и нигде не сохраняется.
// Единственные писатели — явные действия пользователя и финальная очистка
// оркестратором оформления заказа.
package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/velmurzaev/storefront-console/internal/models"
)

// Cart — корзина одной сессии. Строки хранятся в порядке добавления;
// порядок нужен только для отображения и не несёт бизнес-смысла.
type Cart struct {
	mu    sync.Mutex
	lines []*models.CartLine
}

// New создаёт пустую корзину.
func New() *Cart {
	return &Cart{}
}

// Add добавляет товар в корзину. Если строка с тем же ProductID уже есть,
// её количество увеличивается на единицу; дубликат строки не создаётся.
// Сохраняется копия товара: последующие обновления каталога не меняют
// цену уже добавленной строки. Возвращает затронутую строку.
func (c *Cart) Add(product models.Product) models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.lines {
		if line.Product.ProductID == product.ProductID {
			line.Quantity++
			return *line
		}
	}
	line := &models.CartLine{
		LineID:   uuid.NewString(),
		Product:  product,
		Quantity: 1,
	}
	c.lines = append(c.lines, line)
	return *line
}

// Increase увеличивает количество строки на единицу.
// Возвращает false, если строка не найдена.
func (c *Cart) Increase(lineID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.find(lineID)
	if line == nil {
		return false
	}
	line.Quantity++
	return true
}

// Decrease уменьшает количество строки на единицу, но не ниже единицы:
// видимая строка никогда не исчезает молча, удаление — только явный Remove.
// Возвращает false, если строка не найдена.
func (c *Cart) Decrease(lineID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.find(lineID)
	if line == nil {
		return false
	}
	if line.Quantity > 1 {
		line.Quantity--
	}
	return true
}

// Remove удаляет строку по её идентичности (LineID), а не по товару:
// удаление одной строки не может задеть другую с равной копией товара.
// Возвращает false, если строка не найдена.
func (c *Cart) Remove(lineID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, line := range c.lines {
		if line.LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear опустошает корзину. Вызывается оркестратором после успешного
// оформления заказа либо явно пользователем.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines возвращает копию строк корзины в порядке добавления.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]models.CartLine, len(c.lines))
	for i, line := range c.lines {
		lines[i] = *line
	}
	return lines
}

// Len возвращает число строк корзины.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// TotalQuantity возвращает суммарное количество единиц товара.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal возвращает сумму по строкам: цена копии товара на момент
// добавления, умноженная на количество.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, line := range c.lines {
		sum += line.Product.Price * float64(line.Quantity)
	}
	return sum
}

// Total возвращает итоговую сумму заказа. Сейчас совпадает с Subtotal;
// скидки и налоги, если появятся, должны считаться чистой функцией от
// строк, не меняя сами строки.
func (c *Cart) Total() float64 {
	return c.Subtotal()
}

// Snapshot возвращает позиции заказа для передачи бекенду.
func (c *Cart) Snapshot() []models.PurchaseItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.PurchaseItem, len(c.lines))
	for i, line := range c.lines {
		items[i] = models.PurchaseItem{
			ProductID: line.Product.ProductID,
			Qty:       line.Quantity,
		}
	}
	return items
}

// find возвращает строку по LineID. Вызывать только под мьютексом.
func (c *Cart) find(lineID string) *models.CartLine {
	for _, line := range c.lines {
		if line.LineID == lineID {
			return line
		}
	}
	return nil
}
