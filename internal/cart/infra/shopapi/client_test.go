package shopapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"mug","name":"Mug","price":12.5,"description":"","category":"kitchen","image":"/products/mug.jpg"}]`)
	}))
	defer srv.Close()

	products, err := New(srv.URL+"/", nil).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "mug", products[0].ID)
	assert.Equal(t, "12.50", products[0].Price.StringFixed(2))

	cat := Catalog(products)
	p, ok := cat.Lookup("mug")
	require.True(t, ok)
	assert.Equal(t, "Mug", p.Name)
}

func TestSubmitOrder(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"success":true,"message":"Order submitted successfully","orderId":"abc"}`)
	}))
	defer srv.Close()

	conf, err := New(srv.URL, nil).SubmitOrder(context.Background(), OrderRequest{
		CustomerName:  "Jo",
		CustomerEmail: "jo@x.com",
		Items:         []OrderItem{{Name: "Mug", Quantity: 2, Price: Amount(decimal.NewFromInt(5))}},
		Total:         Amount(decimal.NewFromInt(10)),
	})
	require.NoError(t, err)
	assert.True(t, conf.Success)
	assert.Equal(t, "abc", conf.OrderID)

	assert.Equal(t, "Jo", got["customerName"])
	assert.NotContains(t, got, "customerPhone")
	assert.Len(t, got["items"], 1)
	assert.Equal(t, float64(10), got["total"])
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Name is required; Valid email is required"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).SubmitOrder(context.Background(), OrderRequest{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Name is required; Valid email is required", apiErr.Message)
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListProducts(context.Background())
	assert.False(t, IsValidation(err))
	assert.EqualError(t, err, "shop api: status 502")
}
