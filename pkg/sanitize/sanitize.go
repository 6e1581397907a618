// Package sanitize bounds untrusted text and numbers before they reach
// mail bodies or API responses.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Text strips control characters (U+0000..U+001F, U+007F), trims
// surrounding whitespace and truncates to max runes. A max <= 0 means
// no length bound. Text(Text(s, n), n) == Text(s, n).
func Text(s string, max int) string {
	s = strings.TrimSpace(StripControl(s))
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = strings.TrimSpace(truncate(s, max))
	}
	return s
}

// StripControl removes C0 control characters and DEL.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r <= 0x1F || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// Email lower-cases and trims an address. Nothing else is rewritten.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampDecimal bounds d to [lo, hi].
func ClampDecimal(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

func truncate(s string, max int) string {
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
