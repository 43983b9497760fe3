package cashbook

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
//
// The value is kept exact; it is only rounded to the currency fraction when
// displayed or persisted.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a numeric value and a currency code. An empty
// currency makes a "weak" amount that takes the currency of the book it is
// recorded in.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// fraction returns the number of decimal digits of the currency, 2 when the
// currency is weak or unknown.
func (m Money) fraction() int32 {
	if c := money.GetCurrency(m.cur); c != nil {
		return int32(c.Fraction)
	}
	return 2
}

// String returns the string representation of the money value, rounded to the currency fraction.
func (m Money) String() string {
	c := money.GetCurrency(m.cur)
	if c == nil {
		return m.value.StringFixed(2)
	}
	dec := m.value.Shift(int32(c.Fraction)).Round(0)
	return c.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// DivN divides m evenly in n parts. Dividing by zero parts yields zero.
func (m Money) DivN(n int) Money {
	if n == 0 {
		return Money{cur: m.cur}
	}
	return Money{value: m.value.Div(decimal.NewFromInt(int64(n))), cur: m.cur}
}

// Round2 returns m rounded to the currency fraction (two digits for most currencies).
func (m Money) Round2() Money {
	return Money{value: m.value.Round(m.fraction()), cur: m.cur}
}

// AsFloat returns an approximation of the value, for charts and spreadsheets only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// in returns m stamped with currency c when m is weak.
func (m Money) in(c string) Money {
	if m.cur == "" {
		m.cur = c
	}
	return m
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON writes the amount rounded to the currency fraction as a plain
// json number, the currency is written by the enclosing object.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(m.fraction()).MarshalJSON()
}

// UnmarshalJSON reads a json number or string into a weak Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	*m = Money{value: d}
	return nil
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
