package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/al1ce23/shitshop/internal/cart/domain"
)

// Service is the cart manager: it owns the cart, persists it after every
// mutation and pushes the new state to the view.
type Service struct {
	mu      sync.Mutex
	cart    *domain.Cart
	catalog Catalog
	store   Store
	view    View
	log     *slog.Logger
}

func NewService(catalog Catalog, store Store, view View, log *slog.Logger) *Service {
	if view == nil {
		view = nopView{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:    &domain.Cart{},
		catalog: catalog,
		store:   store,
		view:    view,
		log:     log,
	}
}

// SetCatalog swaps the catalog used by Add, e.g. after a reload.
func (s *Service) SetCatalog(c Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
}

// Restore loads the stored snapshot. Unreadable or missing data leaves
// an empty cart.
func (s *Service) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(ctx, StorageKey)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.cart = &domain.Cart{}
	case err != nil:
		s.log.Warn("cart restore failed, starting empty", slog.Any("err", err))
		s.cart = &domain.Cart{}
	default:
		s.cart = domain.Restore(data)
	}
	s.render()
}

// Add puts one unit of productID in the cart. Unknown products are ignored.
func (s *Service) Add(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog == nil {
		return nil
	}
	p, ok := s.catalog.Lookup(productID)
	if !ok {
		s.log.Debug("add ignored, product not in catalog", slog.String("product_id", productID))
		return nil
	}
	s.cart.Add(p.ID, p.Name, p.Price)
	return s.commit(ctx)
}

// UpdateQuantity changes the quantity of productID by delta, removing the
// line when it reaches zero. Unknown ids are ignored.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.UpdateQuantity(productID, delta) {
		return nil
	}
	return s.commit(ctx)
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	return s.commit(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.commit(ctx)
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// commit persists and renders. The view is rendered even when the save
// fails.
func (s *Service) commit(ctx context.Context) error {
	defer s.render()

	data, err := s.cart.Snapshot()
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Service) render() {
	s.view.Render(s.snapshot())
}

func (s *Service) snapshot() Snapshot {
	return Snapshot{
		Items: s.cart.Items(),
		Count: s.cart.Count(),
		Total: s.cart.Total(),
	}
}
