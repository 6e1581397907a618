package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/al1ce23/shitshop/internal/checkout/domain"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int64
}

type CartReader interface {
	Items(ctx context.Context) ([]CartItem, error)
}

type CartClearer interface {
	Clear(ctx context.Context) error
}

// OrderSubmitter sends the order to the shop and returns its confirmation.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, customer domain.Customer, quote domain.Quote) (domain.Confirmation, error)
}

type Service struct {
	Cart    CartReader
	Clearer CartClearer
	Orders  OrderSubmitter

	log *slog.Logger
}

func NewService(cart CartReader, clearer CartClearer, orders OrderSubmitter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:    cart,
		Clearer: clearer,
		Orders:  orders,
		log:     log,
	}
}

var ErrEmptyCart = errors.New("cart is empty")

func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	items, err := s.Cart.Items(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	total := decimal.Zero
	for idx, it := range items {
		if it.Quantity <= 0 {
			return domain.Quote{}, fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
		}
		lineTotal := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		lines[idx] = domain.QuoteLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			LineTotal: lineTotal,
		}
		total = total.Add(lineTotal)
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}

// Submit sends the cart as an order. The cart is cleared only after the
// shop accepted it; on any failure it is left as it was.
func (s *Service) Submit(ctx context.Context, customer domain.Customer) (domain.Confirmation, error) {
	quote, err := s.Quote(ctx)
	if err != nil {
		return domain.Confirmation{}, err
	}

	conf, err := s.Orders.SubmitOrder(ctx, customer, quote)
	if err != nil {
		return domain.Confirmation{}, err
	}
	s.log.Info("order submitted", slog.String("order_id", conf.OrderID), slog.Int("lines", len(quote.Lines)))

	if err := s.Clearer.Clear(ctx); err != nil {
		// The order is already placed; report success regardless.
		s.log.Warn("clear cart after order failed", slog.Any("err", err))
	}
	return conf, nil
}
