package cart

import (
	"fmt"
	"strings"
)

const receiptNameWidth = 15

// Receipt отрисовывает текстовый чек по текущему содержимому корзины:
// нумерованные строки с названием (обрезанным до 15 символов),
// количеством и ценой, и итоговой суммой.
func (c *Cart) Receipt() string {
	lines := c.Lines()

	var b strings.Builder
	b.WriteString("          RECEIPT\n")
	b.WriteString("--------------------------------------------\n")
	b.WriteString("No  Product Name     Qty     Price\n")
	b.WriteString("--------------------------------------------\n")

	var total float64
	for i, line := range lines {
		name := line.Product.ProductName
		if len(name) > receiptNameWidth {
			name = name[:receiptNameWidth-3] + "..."
		}
		price := line.Product.Price
		total += price * float64(line.Quantity)
		b.WriteString(fmt.Sprintf("%-3d %-15s %3d    $%6.2f\n", i+1, name, line.Quantity, price))
	}

	b.WriteString("--------------------------------------------\n")
	b.WriteString(fmt.Sprintf("Total: $%.2f\n", total))
	b.WriteString("--------------------------------------------\n")
	return b.String()
}
