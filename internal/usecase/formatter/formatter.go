// Package formatter renders the display strings carried by dashboard view-models.
package formatter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used for date columns such as a customer's last purchase
const DateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// SafeDivide returns numerator/denominator, or zero when the denominator is zero
func SafeDivide(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.DivRound(denominator, 8)
}

// SafePercent returns part as a percentage of total, or zero when total is zero
func SafePercent(part, total decimal.Decimal) decimal.Decimal {
	return SafeDivide(part.Mul(hundred), total)
}

// Currency formats an amount as "$1,234.50" (negative amounts as "-$1,234.50")
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return sign + "$" + group(whole) + "." + frac
}

// Percent formats a percentage value as "12.5%"
func Percent(value decimal.Decimal) string {
	return value.Round(1).StringFixed(1) + "%"
}

// SignedPercent formats a change as "+12.5%" or "-3.0%"; zero renders unsigned
func SignedPercent(value decimal.Decimal) string {
	rounded := value.Round(1)
	if rounded.IsPositive() {
		return "+" + Percent(rounded)
	}
	return Percent(rounded)
}

// Date formats a calendar date for display
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// group inserts thousands separators into a run of digits of any length
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
