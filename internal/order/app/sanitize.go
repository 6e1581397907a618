package app

import (
	"github.com/al1ce23/shitshop/internal/order/domain"
	"github.com/al1ce23/shitshop/pkg/sanitize"
	"github.com/shopspring/decimal"
)

const (
	MaxNameLen     = 100
	MaxEmailLen    = 254
	MaxPhoneLen    = 50
	MaxAddressLen  = 500
	MaxItemNameLen = 200
	MaxItems       = 50

	MinQuantity = 1
	MaxQuantity = 1000
)

var (
	MaxItemPrice   = decimal.NewFromInt(100_000)
	MaxClientTotal = decimal.NewFromInt(1_000_000)
)

// Sanitize bounds every field of p. The returned order carries a total
// recomputed from the sanitized items; p.Total is never read.
func Sanitize(p domain.Payload) domain.Order {
	items := p.Items.Items
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}

	out := domain.Order{
		CustomerName:    sanitize.Text(p.CustomerName.Value, MaxNameLen),
		CustomerEmail:   sanitize.Email(p.CustomerEmail.Value),
		CustomerPhone:   sanitize.Text(p.CustomerPhone.Value, MaxPhoneLen),
		CustomerAddress: sanitize.Text(p.CustomerAddress.Value, MaxAddressLen),
		Items:           make([]domain.OrderItem, 0, len(items)),
	}

	for _, it := range items {
		out.Items = append(out.Items, domain.OrderItem{
			Name:     sanitize.Text(it.Name.Value, MaxItemNameLen),
			Quantity: quantity(it.Quantity),
			Price:    price(it.Price),
		})
	}

	out.Total = Total(out.Items)
	return out
}

// Total is the authoritative order total.
func Total(items []domain.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

func quantity(n domain.Number) int64 {
	if !n.Valid {
		return MinQuantity
	}
	q := sanitize.ClampDecimal(n.Value, decimal.NewFromInt(MinQuantity), decimal.NewFromInt(MaxQuantity))
	return q.IntPart()
}

func price(n domain.Number) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return sanitize.ClampDecimal(n.Value, decimal.Zero, MaxItemPrice)
}
