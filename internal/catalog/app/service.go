package app

import (
	"context"
	"errors"
	"strings"

	"github.com/al1ce23/shitshop/internal/catalog/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// AllCategories is the pseudo category that matches every product.
const AllCategories = "all"

type Service struct {
	src ProductSource
}

func NewService(src ProductSource) *Service {
	return &Service{
		src: src,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.src.List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}

	products, err := s.src.List(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	if p, ok := Find(products, id); ok {
		return p, nil
	}
	return domain.Product{}, ErrNotFound
}

func Find(products []domain.Product, id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories returns AllCategories followed by the distinct non-empty
// categories in first-seen order.
func Categories(products []domain.Product) []string {
	out := []string{AllCategories}
	seen := map[string]struct{}{AllCategories: {}}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func FilterByCategory(products []domain.Product, category string) []domain.Product {
	if category == "" || category == AllCategories {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
