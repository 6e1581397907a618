package adapter

import (
	"context"

	"github.com/al1ce23/shitshop/internal/cart/infra/shopapi"
	"github.com/al1ce23/shitshop/internal/checkout/domain"
)

// ShopOrderSubmitter posts orders through the shop HTTP client.
type ShopOrderSubmitter struct {
	client *shopapi.Client
}

func NewShopOrderSubmitter(client *shopapi.Client) *ShopOrderSubmitter {
	return &ShopOrderSubmitter{client: client}
}

func (s *ShopOrderSubmitter) SubmitOrder(ctx context.Context, c domain.Customer, q domain.Quote) (domain.Confirmation, error) {
	req := shopapi.OrderRequest{
		CustomerName:    c.Name,
		CustomerEmail:   c.Email,
		CustomerPhone:   c.Phone,
		CustomerAddress: c.Address,
		Items:           make([]shopapi.OrderItem, 0, len(q.Lines)),
		Total:           shopapi.Amount(q.Total),
	}
	for _, ln := range q.Lines {
		req.Items = append(req.Items, shopapi.OrderItem{
			Name:     ln.Name,
			Quantity: int(ln.Quantity),
			Price:    shopapi.Amount(ln.UnitPrice),
		})
	}

	resp, err := s.client.SubmitOrder(ctx, req)
	if err != nil {
		return domain.Confirmation{}, err
	}
	return domain.Confirmation{OrderID: resp.OrderID, Message: resp.Message}, nil
}
