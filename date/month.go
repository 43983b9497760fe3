package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readMonthFormat = "2006-1"

// MonthFormat is the "YYYY-MM" layout of a month key.
const MonthFormat = "2006-01"

// Month identifies a calendar month. It is the grouping key of every
// aggregation: its string form "YYYY-MM" sorts lexicographically in
// chronological order.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, so that NewMonth(2024, 13) is 2025-01.
func NewMonth(year int, month time.Month) Month {
	return New(year, month, 1).MonthKey()
}

// ThisMonth returns the current month.
func ThisMonth() Month { return Today().MonthKey() }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// IsZero returns true if the month is the zero value.
func (m Month) IsZero() bool { return m == Month{} }

// First returns the first day of the month.
func (m Month) First() Date { return New(m.y, m.m, 1) }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after n.
func (m Month) Compare(n Month) int {
	a, b := m.y*12+int(m.m), n.y*12+int(n.m)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String returns the "YYYY-MM" month key.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.y, int(m.m))
}

// Name returns a human friendly name like "January 2024".
func (m Month) Name() string { return m.First().Format("January 2006") }

// ParseMonth parses a "YYYY-MM" month key. It is lenient and accepts "2024-1".
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(readMonthFormat, strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return NewMonth(on.Year(), on.Month()), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	if str == "" {
		*m = Month{}
		return nil
	}
	v, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// MarshalText lets a Month be used as a JSON object key.
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
