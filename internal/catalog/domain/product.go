package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
}
