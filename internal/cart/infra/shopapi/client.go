package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/al1ce23/shitshop/internal/cart/app"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 4 << 20

// APIError is a non-2xx reply from the shop. Message carries the server's
// "error" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("shop api: status %d", e.Status)
	}
	return fmt.Sprintf("shop api: status %d: %s", e.Status, e.Message)
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// OrderItem and OrderRequest carry prices as json.Number so they go out as
// JSON numbers rather than decimal's quoted strings.
type OrderItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

type OrderRequest struct {
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   string      `json:"customerPhone,omitempty"`
	CustomerAddress string      `json:"customerAddress,omitempty"`
	Items           []OrderItem `json:"items"`
	Total           json.Number `json:"total"`
}

// Amount renders d for an OrderRequest.
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type OrderConfirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return OrderConfirmation{}, fmt.Errorf("encode order: %w", err)
	}
	var out OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/api/order", body, &out); err != nil {
		return OrderConfirmation{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsValidation reports whether err is a 400 reply from the shop.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// Catalog converts a product listing into the cart's lookup table.
func Catalog(products []Product) app.ProductList {
	out := make(app.ProductList, 0, len(products))
	for _, p := range products {
		out = append(out, app.Product{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out
}
