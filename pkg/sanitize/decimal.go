package sanitize

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// maxExponent bounds exponents of client supplied numbers; larger values
// would make decimal comparisons rescale to absurd precision.
const maxExponent = 64

// Decimal reads a JSON number, or a JSON string holding a decimal
// literal. Anything else, including null, reports false.
func Decimal(raw []byte) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero, false
	}

	var lit string
	switch c := raw[0]; {
	case c == '"':
		if err := json.Unmarshal(raw, &lit); err != nil {
			return decimal.Zero, false
		}
		lit = strings.TrimSpace(lit)
	case c == '-' || (c >= '0' && c <= '9'):
		lit = string(raw)
	default:
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	return d, true
}
