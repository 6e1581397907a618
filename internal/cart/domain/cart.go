package domain

import (
	"encoding/json"
	"math"

	"github.com/al1ce23/shitshop/pkg/sanitize"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line. Increments past it saturate.
const MaxQuantity = math.MaxInt32

// Item is one cart line. A cart holds at most one Item per ID and never
// an Item with Quantity below 1.
type Item struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart keeps items in insertion order. The zero value is an empty cart.
type Cart struct {
	items []Item
}

func (c *Cart) index(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Add increments the quantity of id, or appends it with quantity 1.
func (c *Cart) Add(id, name string, price decimal.Decimal) {
	if idx := c.index(id); idx >= 0 {
		if c.items[idx].Quantity < MaxQuantity {
			c.items[idx].Quantity++
		}
		return
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	c.items = append(c.items, Item{ID: id, Name: name, Price: price, Quantity: 1})
}

// UpdateQuantity adds delta to the quantity of id, saturating at
// MaxQuantity, and removes the item when the result drops to zero or
// below. It reports whether id was in the cart.
func (c *Cart) UpdateQuantity(id string, delta int) bool {
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	cur := c.items[idx].Quantity
	q := cur + delta
	if delta > 0 && delta > MaxQuantity-cur {
		q = MaxQuantity
	}
	if q <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return true
	}
	c.items[idx].Quantity = q
	return true
}

// Remove reports whether id was in the cart.
func (c *Cart) Remove(id string) bool {
	idx := c.index(id)
	if idx < 0 {
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

type snapshotItem struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
}

// Snapshot serializes the cart as a JSON array in insertion order.
func (c *Cart) Snapshot() ([]byte, error) {
	out := make([]snapshotItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, snapshotItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    json.Number(it.Price.String()),
			Quantity: it.Quantity,
		})
	}
	return json.Marshal(out)
}

type storedItem struct {
	ID       json.RawMessage `json:"id"`
	Name     json.RawMessage `json:"name"`
	Price    json.RawMessage `json:"price"`
	Quantity json.RawMessage `json:"quantity"`
}

// Restore rebuilds a cart from a snapshot. It never fails: unreadable data
// gives an empty cart, and entries without a string id, with a quantity
// below 1 or repeating an earlier id are dropped. Non-numeric prices
// count as 0.
func Restore(data []byte) *Cart {
	c := &Cart{}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return c
	}

	for _, elem := range raw {
		var st storedItem
		if err := json.Unmarshal(elem, &st); err != nil {
			continue
		}

		var id string
		if err := json.Unmarshal(st.ID, &id); err != nil || id == "" {
			continue
		}
		if c.index(id) >= 0 {
			continue
		}

		qty, ok := sanitize.Decimal(st.Quantity)
		if !ok || qty.LessThan(decimal.NewFromInt(1)) {
			continue
		}
		qty = sanitize.ClampDecimal(qty, decimal.NewFromInt(1), decimal.NewFromInt(MaxQuantity))

		price, ok := sanitize.Decimal(st.Price)
		if !ok || price.IsNegative() {
			price = decimal.Zero
		}

		var name string
		_ = json.Unmarshal(st.Name, &name)

		c.items = append(c.items, Item{
			ID:       id,
			Name:     name,
			Price:    price,
			Quantity: int(qty.IntPart()),
		})
	}
	return c
}
