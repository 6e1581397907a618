package app

import (
	"context"

	"github.com/al1ce23/shitshop/internal/catalog/domain"
)

// ProductSource lists the catalog. Implementations read their backing
// store on every call.
type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
}
