package cashbook

import (
	"testing"

	"github.com/etnz/cashbook/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to parse a date.
func day(s string) date.Date { return date.MustParse(s) }

// month is a helper for test to parse a month key.
func month(s string) date.Month { return date.MustParseMonth(s) }

// newTestBook creates an EUR book or fails the test.
func newTestBook(t *testing.T, opts ...Option) *Book {
	t.Helper()
	b, err := NewBook(opts...)
	if err != nil {
		t.Fatalf("NewBook() unexpected error: %v", err)
	}
	return b
}

// closing is a helper for test to create a closing without expenses.
func closing(d string, sales, card, counted float64) DailyClosing {
	return NewDailyClosing(day(d), NO(sales), NO(card), NO(counted), NO(0))
}

// mustClose records c or fails the test.
func mustClose(t *testing.T, b *Book, c DailyClosing) {
	t.Helper()
	if _, err := b.AddDailyClosing(c); err != nil {
		t.Fatalf("AddDailyClosing(%s) unexpected error: %v", c.Date, err)
	}
}

// mustBuy records a purchase or fails the test.
func mustBuy(t *testing.T, b *Book, d, category string, amount float64) {
	t.Helper()
	if _, _, err := b.AddStockPurchase(NewStockPurchase(day(d), category, NO(amount))); err != nil {
		t.Fatalf("AddStockPurchase(%s) unexpected error: %v", d, err)
	}
}

// mustFix records a fixed cost or fails the test.
func mustFix(t *testing.T, b *Book, m, concept string, amount float64) {
	t.Helper()
	if _, err := b.AddFixedCost(NewFixedCost(month(m), concept, NO(amount))); err != nil {
		t.Fatalf("AddFixedCost(%s) unexpected error: %v", m, err)
	}
}
