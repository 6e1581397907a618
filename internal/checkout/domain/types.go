package domain

import "github.com/shopspring/decimal"

type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is the checkout summary shown before an order is sent. Total is
// advisory; the shop recomputes it.
type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

type Confirmation struct {
	OrderID string
	Message string
}
