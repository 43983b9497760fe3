package cashbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Ratio is an exact dimensionless ratio, 0.35 meaning 35%.
type Ratio struct {
	value decimal.Decimal
}

// R creates a Ratio.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Ratio {
	return Ratio{value: newDecimal(value)}
}

// ratio returns num/den, or 0 when den is zero.
func ratio(num, den Money) Ratio {
	if den.IsZero() {
		return Ratio{}
	}
	return Ratio{value: num.value.Div(den.value)}
}

func (r Ratio) Equal(s Ratio) bool       { return r.value.Equal(s.value) }
func (r Ratio) LessThan(s Ratio) bool    { return r.value.LessThan(s.value) }
func (r Ratio) GreaterThan(s Ratio) bool { return r.value.GreaterThan(s.value) }
func (r Ratio) IsZero() bool             { return r.value.IsZero() }
func (r Ratio) Decimal() decimal.Decimal { return r.value }

// Percent returns the ratio as a percentage, for display.
func (r Ratio) Percent() Percent { return Percent(r.value.Shift(2).InexactFloat64()) }

// String returns the ratio as a percentage with one digit, like "35.0%".
func (r Ratio) String() string { return fmt.Sprintf("%.1f%%", float64(r.Percent())) }

// MarshalJSON writes the ratio as a plain json number rounded to 4 digits.
func (r Ratio) MarshalJSON() ([]byte, error) { return r.value.Round(4).MarshalJSON() }

func (r *Ratio) UnmarshalJSON(data []byte) error { return r.value.UnmarshalJSON(data) }

// Percent is a percentage value ready to be displayed.
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
