// Package format renders money and dates the way the storefront shows them.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	groupSeparator = "\u00a0"
	currencySuffix = "\u00a0₽"
	dateLayout     = "02.01.2006"
)

// Price renders an amount as "8 990 ₽": digits grouped by three with a
// no-break space, decimal comma kept only when there are kopecks.
func Price(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, cents, _ := strings.Cut(amount.StringFixed(2), ".")
	out := sign + group(whole)
	if cents != "00" {
		out += "," + cents
	}
	return out + currencySuffix
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders an RFC 3339 or ISO timestamp as DD.MM.YYYY.
// Values that cannot be parsed are returned unchanged.
func Date(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout)
		}
	}
	return raw
}
