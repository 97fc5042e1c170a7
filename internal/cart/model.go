package cart

import (
	"cym-store/internal/product"

	"github.com/shopspring/decimal"
)

// CartItem is a denormalized copy of the product taken when it was added,
// plus the requested quantity and an optional free-text customization.
type CartItem struct {
	product.Product
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

func (i CartItem) IsCustomized() bool {
	return i.Customization != ""
}

// Subtotal is price × quantity for priced lines and zero for customized ones,
// whose price is negotiated later.
func (i CartItem) Subtotal() decimal.Decimal {
	if i.IsCustomized() {
		return decimal.Zero
	}
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the subtotals of the non-customized lines.
func Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func HasCustomLines(items []CartItem) bool {
	for _, it := range items {
		if it.IsCustomized() {
			return true
		}
	}
	return false
}

type Summary struct {
	Items          []CartItem      `json:"items"`
	Total          decimal.Decimal `json:"total"`
	HasCustomItems bool            `json:"has_custom_items"`
}

func Summarize(items []CartItem) Summary {
	if items == nil {
		items = []CartItem{}
	}
	return Summary{
		Items:          items,
		Total:          Total(items),
		HasCustomItems: HasCustomLines(items),
	}
}
