package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/al1ce23/shitshop/internal/catalog/domain"
	"github.com/al1ce23/shitshop/pkg/sanitize"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
)

const (
	MaxSidecarBytes   = 64 << 10
	MaxNameLen        = 200
	MaxDescriptionLen = 1000
	MaxCategoryLen    = 100
)

var MaxPrice = decimal.NewFromInt(1_000_000)

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

const sidecarSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": { "type": "string" },
    "description": { "type": "string" },
    "category": { "type": "string" },
    "price": { "type": ["number", "string"] }
  }
}`

var sidecarSchema = mustSchema(sidecarSchemaJSON)

var ErrSidecarTooLarge = errors.New("sidecar too large")

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// IsImage reports whether filename has one of the catalog image extensions.
func IsImage(filename string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// ProductID is the filename without its extension.
func ProductID(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// DefaultProduct is what a product looks like without sidecar metadata.
func DefaultProduct(id, image string) domain.Product {
	name := strings.NewReplacer("_", " ", "-", " ").Replace(id)
	return domain.Product{
		ID:    id,
		Name:  sanitize.Text(name, MaxNameLen),
		Price: decimal.Zero,
		Image: image,
	}
}

type sidecar struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Price       json.RawMessage `json:"price"`
}

// ApplySidecar overlays sidecar metadata on base. When data is oversized,
// malformed or fails the schema, base is returned unchanged together with
// the reason.
func ApplySidecar(base domain.Product, data []byte) (domain.Product, error) {
	if len(data) > MaxSidecarBytes {
		return base, ErrSidecarTooLarge
	}

	res, err := sidecarSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return base, fmt.Errorf("sidecar parse: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return base, fmt.Errorf("sidecar schema: %s", strings.Join(msgs, "; "))
	}

	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return base, fmt.Errorf("sidecar decode: %w", err)
	}

	p := base
	if sc.Name != nil {
		if name := sanitize.Text(*sc.Name, MaxNameLen); name != "" {
			p.Name = name
		}
	}
	if sc.Description != nil {
		p.Description = sanitize.Text(*sc.Description, MaxDescriptionLen)
	}
	if sc.Category != nil {
		p.Category = sanitize.Text(*sc.Category, MaxCategoryLen)
	}
	if len(sc.Price) > 0 {
		p.Price = parsePrice(sc.Price)
	}
	return p, nil
}

func parsePrice(raw json.RawMessage) decimal.Decimal {
	d, ok := sanitize.Decimal(raw)
	if !ok {
		return decimal.Zero
	}
	return sanitize.ClampDecimal(d, decimal.Zero, MaxPrice)
}
