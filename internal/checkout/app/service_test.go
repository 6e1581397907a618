package app

import (
	"context"
	"errors"
	"testing"

	"github.com/al1ce23/shitshop/internal/checkout/domain"
	"github.com/al1ce23/shitshop/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	items   []CartItem
	cleared bool
}

func (c *fakeCart) Items(ctx context.Context) ([]CartItem, error) { return c.items, nil }

func (c *fakeCart) Clear(ctx context.Context) error {
	c.cleared = true
	c.items = nil
	return nil
}

type fakeOrders struct {
	err  error
	got  domain.Quote
	cust domain.Customer
}

func (o *fakeOrders) SubmitOrder(ctx context.Context, c domain.Customer, q domain.Quote) (domain.Confirmation, error) {
	o.cust, o.got = c, q
	if o.err != nil {
		return domain.Confirmation{}, o.err
	}
	return domain.Confirmation{OrderID: "o-1", Message: "Order submitted successfully"}, nil
}

func twoLines() []CartItem {
	return []CartItem{
		{ProductID: "mug", Name: "Mug", Price: decimal.RequireFromString("5.25"), Quantity: 2},
		{ProductID: "tee", Name: "Tee", Price: decimal.NewFromInt(10), Quantity: 1},
	}
}

func TestQuote(t *testing.T) {
	svc := NewService(&fakeCart{items: twoLines()}, nil, nil, logger.Discard())

	q, err := svc.Quote(context.Background())
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, "10.50", q.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "20.50", q.Total.StringFixed(2))
}

func TestSubmitEmptyCart(t *testing.T) {
	cart := &fakeCart{}
	orders := &fakeOrders{}
	svc := NewService(cart, cart, orders, logger.Discard())

	_, err := svc.Submit(context.Background(), domain.Customer{Name: "Jo", Email: "jo@x.com"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.got.Lines)
}

func TestSubmitClearsOnSuccess(t *testing.T) {
	cart := &fakeCart{items: twoLines()}
	orders := &fakeOrders{}
	svc := NewService(cart, cart, orders, logger.Discard())

	conf, err := svc.Submit(context.Background(), domain.Customer{Name: "Jo", Email: "jo@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "o-1", conf.OrderID)
	assert.True(t, cart.cleared)
	assert.Equal(t, "Jo", orders.cust.Name)
	assert.Equal(t, "20.50", orders.got.Total.StringFixed(2))
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	cart := &fakeCart{items: twoLines()}
	orders := &fakeOrders{err: errors.New("status 500")}
	svc := NewService(cart, cart, orders, logger.Discard())

	_, err := svc.Submit(context.Background(), domain.Customer{Name: "Jo", Email: "jo@x.com"})
	require.Error(t, err)
	assert.False(t, cart.cleared)
	assert.Len(t, cart.items, 2)
}
