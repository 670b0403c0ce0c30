package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind classifies a display cell for comparison purposes
type ValueKind int

// Kinds are declared in their sort-class order: numbers before text,
// text before unparseable values, missing values last.
const (
	KindNumber ValueKind = iota
	KindText
	KindInvalid
	KindMissing
)

// Value is a single cell of a display record: a string, a number, or missing.
// Numbers are held as decimals so that currency sums stay exact.
type Value struct {
	Kind ValueKind
	Text string
	Num  decimal.Decimal
}

// Text builds a string cell
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Number builds a numeric cell
func Number(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Num: d}
}

// Int builds a numeric cell from an integer count
func Int(n int) Value {
	return Value{Kind: KindNumber, Num: decimal.NewFromInt(int64(n))}
}

// Missing builds an absent cell
func Missing() Value {
	return Value{Kind: KindMissing}
}

// IsMissing reports whether the cell carries no value
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// String renders the cell the way it was supplied.
// Invalid cells keep their original text.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return v.Num.String()
	case KindText, KindInvalid:
		return v.Text
	default:
		return ""
	}
}

// Coerce turns formatted currency and percentage strings into numbers.
// Rules:
//   - contains "$": strip "$" and "," and parse
//   - contains "%": strip "%" and a leading "+" and parse
//   - anything else is returned unchanged
//
// A formatted string that does not parse becomes KindInvalid.
func Coerce(v Value) Value {
	if v.Kind != KindText {
		return v
	}

	switch {
	case strings.Contains(v.Text, "$"):
		raw := strings.NewReplacer("$", "", ",", "").Replace(v.Text)
		return parseFormatted(v.Text, raw)
	case strings.Contains(v.Text, "%"):
		raw := strings.TrimSpace(strings.ReplaceAll(v.Text, "%", ""))
		raw = strings.TrimPrefix(raw, "+")
		return parseFormatted(v.Text, raw)
	default:
		return v
	}
}

func parseFormatted(original, raw string) Value {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Value{Kind: KindInvalid, Text: original}
	}
	return Number(d)
}

// Compare orders two coerced cells and returns -1, 0 or +1.
// Cells of different kinds order by kind; numbers compare numerically,
// text compares bytewise. Invalid and missing cells are all equal within
// their kind.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}

	switch a.Kind {
	case KindNumber:
		return a.Num.Cmp(b.Num)
	case KindText:
		return strings.Compare(a.Text, b.Text)
	default:
		return 0
	}
}
