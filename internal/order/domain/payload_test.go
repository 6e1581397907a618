package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadDecodeLenient(t *testing.T) {
	body := `{
		"customerName": 42,
		"customerEmail": "jo@x.com",
		"customerPhone": null,
		"items": [
			{"name": "Mug", "quantity": "3", "price": 5.5},
			"junk",
			{"name": ["x"], "quantity": true, "price": "abc"}
		],
		"total": "16.5"
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.True(t, p.CustomerName.Set)
	assert.False(t, p.CustomerName.IsString)
	assert.True(t, p.CustomerName.Present())
	assert.Equal(t, "", p.CustomerName.Value)
	assert.True(t, p.CustomerEmail.IsString)
	assert.Equal(t, "jo@x.com", p.CustomerEmail.Value)
	assert.False(t, p.CustomerPhone.Set)
	assert.False(t, p.CustomerPhone.Present())
	assert.False(t, p.CustomerAddress.Set)

	require.True(t, p.Items.IsArray)
	require.Len(t, p.Items.Items, 3)

	first := p.Items.Items[0]
	assert.Equal(t, "Mug", first.Name.Value)
	assert.True(t, first.Quantity.Valid)
	assert.True(t, first.Quantity.Value.Equal(decimal.NewFromInt(3)))
	assert.True(t, first.Price.Value.Equal(decimal.RequireFromString("5.5")))

	assert.Equal(t, PayloadItem{}, p.Items.Items[1])

	third := p.Items.Items[2]
	assert.True(t, third.Name.Set)
	assert.Equal(t, "", third.Name.Value)
	assert.False(t, third.Quantity.Valid)
	assert.False(t, third.Price.Valid)

	assert.True(t, p.Total.Valid)
	assert.True(t, p.Total.Value.Equal(decimal.RequireFromString("16.5")))
}

func TestItemsNotArray(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"items": {"name": "Mug"}}`), &p))
	assert.False(t, p.Items.IsArray)
	assert.Empty(t, p.Items.Items)
}

func TestNumberRejectsHugeExponent(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`1e999999999`), &n))
	assert.False(t, n.Valid)

	require.NoError(t, json.Unmarshal([]byte(`1e3`), &n))
	assert.True(t, n.Valid)
	assert.True(t, n.Value.Equal(decimal.NewFromInt(1000)))
}

func TestLineTotal(t *testing.T) {
	it := OrderItem{Name: "A", Quantity: 2, Price: decimal.NewFromInt(10)}
	assert.Equal(t, "20.00", it.LineTotal().StringFixed(2))
}
