package order

import (
	"cym-store/internal/cart"
	"cym-store/internal/events"
)

// linesFromCart copies the cart lines as given; the catalog is not consulted.
func linesFromCart(items []cart.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			ProductID:     it.ID,
			ProductName:   it.Name,
			Price:         it.Price,
			Quantity:      it.Quantity,
			Customization: it.Customization,
		})
	}
	return lines
}

func toOrderPlaced(o Order, lines []Line) events.OrderPlaced {
	ev := events.OrderPlaced{
		OrderID:        o.ID,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		CustomerEmail:  o.CustomerEmail,
		Total:          o.Total,
		HasCustomItems: o.HasCustomItems,
		Lines:          make([]events.OrderPlacedLine, 0, len(lines)),
	}
	for _, l := range lines {
		ev.Lines = append(ev.Lines, events.OrderPlacedLine{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Price:         l.Price,
			Quantity:      l.Quantity,
			Customization: l.Customization,
		})
	}
	return ev
}
