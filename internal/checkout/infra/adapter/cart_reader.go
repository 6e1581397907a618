package adapter

import (
	"context"

	cartapp "github.com/al1ce23/shitshop/internal/cart/app"
	checkoutapp "github.com/al1ce23/shitshop/internal/checkout/app"
)

// CartServiceReader exposes the cart manager to checkout as both reader
// and clearer.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Items(ctx context.Context) ([]checkoutapp.CartItem, error) {
	snap := r.svc.Snapshot()

	items := make([]checkoutapp.CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  int64(it.Quantity),
		})
	}
	return items, nil
}

func (r *CartServiceReader) Clear(ctx context.Context) error {
	return r.svc.Clear(ctx)
}
