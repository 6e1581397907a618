package app

import (
	"context"
	"errors"

	"github.com/al1ce23/shitshop/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// StorageKey is the fixed key the cart snapshot is saved under.
const StorageKey = "cart"

// ErrNoSnapshot is returned by a Store that holds nothing under a key.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store is the client-local persistence boundary.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Catalog resolves product ids against the currently loaded catalog.
type Catalog interface {
	Lookup(id string) (Product, bool)
}

// View receives the cart state after every change.
type View interface {
	Render(s Snapshot)
}

type Snapshot struct {
	Items []domain.Item
	Count int
	Total decimal.Decimal
}

type nopView struct{}

func (nopView) Render(Snapshot) {}
