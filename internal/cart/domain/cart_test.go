package domain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCartAddIncrements(t *testing.T) {
	var c Cart
	assert.True(t, c.IsEmpty())

	c.Add("p1", "Mug", dec("5"))
	c.Add("p2", "Tee", dec("12.50"))
	c.Add("p1", "Mug", dec("5"))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ID)
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, "22.50", c.Total().StringFixed(2))
}

func TestCartUpdateQuantity(t *testing.T) {
	var c Cart
	c.Add("p1", "Mug", dec("5"))

	t.Run("absent id -> no-op", func(t *testing.T) {
		assert.False(t, c.UpdateQuantity("nope", 1))
		assert.Equal(t, 1, c.Count())
	})

	t.Run("increment", func(t *testing.T) {
		assert.True(t, c.UpdateQuantity("p1", 2))
		assert.Equal(t, 3, c.Items()[0].Quantity)
	})

	t.Run("drop to zero removes", func(t *testing.T) {
		assert.True(t, c.UpdateQuantity("p1", -3))
		assert.True(t, c.IsEmpty())
	})
}

func TestQuantitySaturates(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"max int delta", 1, math.MaxInt, MaxQuantity},
		{"just past the cap", MaxQuantity - 1, 2, MaxQuantity},
		{"exactly to the cap", MaxQuantity - 5, 5, MaxQuantity},
		{"down from the cap", MaxQuantity, -1, MaxQuantity - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			c.Add("p1", "Mug", dec("1"))
			c.UpdateQuantity("p1", tt.start-1)
			require.True(t, c.UpdateQuantity("p1", tt.delta))
			require.Len(t, c.Items(), 1)
			assert.Equal(t, tt.want, c.Items()[0].Quantity)
		})
	}

	t.Run("min int delta removes", func(t *testing.T) {
		var c Cart
		c.Add("p1", "Mug", dec("1"))
		c.UpdateQuantity("p1", math.MinInt)
		assert.True(t, c.IsEmpty())
	})

	t.Run("add at the cap stays", func(t *testing.T) {
		var c Cart
		c.Add("p1", "Mug", dec("1"))
		c.UpdateQuantity("p1", math.MaxInt)
		c.Add("p1", "Mug", dec("1"))
		assert.Equal(t, MaxQuantity, c.Items()[0].Quantity)
	})

	t.Run("saturated cart restores unchanged", func(t *testing.T) {
		var c Cart
		c.Add("p1", "Mug", dec("2"))
		c.UpdateQuantity("p1", math.MaxInt)
		data, err := c.Snapshot()
		require.NoError(t, err)
		back := Restore(data)
		require.Len(t, back.Items(), 1)
		assert.Equal(t, MaxQuantity, back.Items()[0].Quantity)
		assert.True(t, c.Total().Equal(back.Total()))
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	var c Cart
	c.Add("a", "A", dec("1"))
	c.Add("b", "B", dec("2"))
	c.Add("c", "C", dec("3"))

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	ids := []string{c.Items()[0].ID, c.Items()[1].ID}
	assert.Equal(t, []string{"a", "c"}, ids)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestItemsReturnsCopy(t *testing.T) {
	var c Cart
	c.Add("a", "A", dec("1"))
	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCartInvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d"}
	prices := map[string]decimal.Decimal{"a": dec("1.10"), "b": dec("2"), "c": dec("0"), "d": dec("7.35")}

	var c Cart
	for step := 0; step < 5000; step++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			c.Add(id, id, prices[id])
		case 1:
			c.UpdateQuantity(id, rng.Intn(7)-3)
		case 2:
			c.Remove(id)
		}

		seen := map[string]bool{}
		want := decimal.Zero
		for _, it := range c.Items() {
			require.False(t, seen[it.ID], "duplicate id %s at step %d", it.ID, step)
			seen[it.ID] = true
			require.GreaterOrEqual(t, it.Quantity, 1, "step %d", step)
			want = want.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		require.True(t, c.Total().Equal(want), "step %d", step)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	var c Cart
	c.Add("p1", "Mug", dec("5.25"))
	c.Add("p2", "Tee", dec("10"))
	c.Add("p1", "Mug", dec("5.25"))

	data, err := c.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","name":"Mug","price":5.25,"quantity":2},{"id":"p2","name":"Tee","price":10,"quantity":1}]`, string(data))

	back := Restore(data)
	assert.Equal(t, c.Count(), back.Count())
	assert.True(t, c.Total().Equal(back.Total()))
}

func TestRestoreBestEffort(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		ids   []string
		total string
	}{
		{"zero quantity dropped", `[{"id":"p1","name":"Mug","price":5,"quantity":0}]`, nil, "0.00"},
		{"garbage", `{{{not json`, nil, "0.00"},
		{"object not array", `{"id":"p1"}`, nil, "0.00"},
		{"empty", ``, nil, "0.00"},
		{"negative quantity dropped", `[{"id":"p1","price":5,"quantity":-2},{"id":"p2","price":1,"quantity":1}]`, []string{"p2"}, "1.00"},
		{"non-numeric price -> 0", `[{"id":"p1","price":"abc","quantity":2}]`, []string{"p1"}, "0.00"},
		{"numeric string price", `[{"id":"p1","price":"2.5","quantity":"2"}]`, []string{"p1"}, "5.00"},
		{"non-numeric quantity dropped", `[{"id":"p1","price":3,"quantity":"lots"}]`, nil, "0.00"},
		{"duplicate ids keep first", `[{"id":"p1","price":1,"quantity":1},{"id":"p1","price":9,"quantity":9}]`, []string{"p1"}, "1.00"},
		{"missing id dropped", `[{"price":1,"quantity":1},"junk",{"id":7,"price":1,"quantity":1}]`, nil, "0.00"},
		{"fractional quantity truncated", `[{"id":"p1","price":2,"quantity":2.9}]`, []string{"p1"}, "4.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Restore([]byte(tt.data))
			var ids []string
			for _, it := range c.Items() {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.total, c.Total().StringFixed(2))
		})
	}
}
