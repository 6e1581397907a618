package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payload is the raw order body as posted by a client. Nothing in it is
// trusted; every field decodes without failing on type mismatches.
type Payload struct {
	CustomerName    Text     `json:"customerName"`
	CustomerEmail   Text     `json:"customerEmail"`
	CustomerPhone   Text     `json:"customerPhone"`
	CustomerAddress Text     `json:"customerAddress"`
	Items           ItemList `json:"items"`
	Total           Number   `json:"total"`
}

type PayloadItem struct {
	Name     Text   `json:"name"`
	Quantity Number `json:"quantity"`
	Price    Number `json:"price"`
}

// Order is a sanitized payload with a server-computed total.
type Order struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Items           []OrderItem
	Total           decimal.Decimal
	ReceivedAt      time.Time
}

type OrderItem struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}
