package domain

import (
	"bytes"
	"encoding/json"

	"github.com/al1ce23/shitshop/pkg/sanitize"
	"github.com/shopspring/decimal"
)

// Text is a JSON value that is expected to be a string. Any other JSON
// type decodes to an empty Value with Set true and IsString false.
type Text struct {
	Value    string
	Set      bool
	IsString bool
}

func TextOf(s string) Text { return Text{Value: s, Set: true, IsString: true} }

// Present reports a non-null value that is either a non-empty string or
// not a string at all.
func (t Text) Present() bool {
	return t.Set && (!t.IsString || t.Value != "")
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	t.Set = true
	if data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t.Value = s
	t.IsString = true
	return nil
}

// Number is a JSON value that is expected to be numeric. JSON numbers and
// strings holding a decimal literal are accepted; everything else leaves
// Valid false.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

func NumberOf(f float64) Number { return Number{Value: decimal.NewFromFloat(f), Valid: true} }

func (n *Number) UnmarshalJSON(data []byte) error {
	d, ok := sanitize.Decimal(data)
	*n = Number{Value: d, Valid: ok}
	return nil
}

// ItemList decodes the items field. Array elements that are not objects
// become zero PayloadItems, so sanitization still sees one entry per
// element.
type ItemList struct {
	Items   []PayloadItem
	IsArray bool
}

func ItemsOf(items ...PayloadItem) ItemList {
	return ItemList{Items: items, IsArray: true}
}

func (l *ItemList) UnmarshalJSON(data []byte) error {
	*l = ItemList{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	l.IsArray = true
	l.Items = make([]PayloadItem, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		var it PayloadItem
		if err := json.Unmarshal(elem, &it); err == nil {
			l.Items[i] = it
		}
	}
	return nil
}
