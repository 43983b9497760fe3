package cashbook

import (
	"fmt"
)

// field binds a money field to its name for error messages.
type field struct {
	name string
	m    *Money
}

// stamp checks that every amount is non negative and in the book currency.
// Weak amounts are stamped with the book currency.
func (b *Book) stamp(fields ...field) error {
	for _, f := range fields {
		if f.m.IsNegative() {
			return fmt.Errorf("%s must not be negative, got %s: %w", f.name, f.m, ErrInvalidValue)
		}
		if f.m.cur != "" && f.m.cur != b.currency {
			return fmt.Errorf("%s currency %s does not match book currency %s: %w", f.name, f.m.cur, b.currency, ErrInvalidValue)
		}
		*f.m = f.m.in(b.currency)
	}
	return nil
}

// Validate checks the closing against the book and returns a copy with its
// amounts stamped with the book currency.
func (c DailyClosing) Validate(b *Book) (DailyClosing, error) {
	c.Command = CmdClose
	if c.Date.IsZero() {
		return c, fmt.Errorf("closing date is missing: %w", ErrInvalidValue)
	}
	err := b.stamp(
		field{"sales", &c.Sales},
		field{"card", &c.Card},
		field{"counted", &c.Counted},
		field{"personnel", &c.Personnel},
		field{"stock", &c.Stock},
		field{"other", &c.Other},
	)
	if err != nil {
		return c, err
	}
	if _, exists := b.byDate[c.Date]; exists {
		return c, fmt.Errorf("a closing already exists on %s: %w", c.Date, ErrDuplicateKey)
	}
	return c, nil
}

// Validate checks the purchase against the book and returns a copy with its
// category trimmed and its amount stamped with the book currency.
func (p StockPurchase) Validate(b *Book) (StockPurchase, error) {
	p.Command = CmdStock
	if p.Date.IsZero() {
		return p, fmt.Errorf("purchase date is missing: %w", ErrInvalidValue)
	}
	p.Category = normalizeLabel(p.Category)
	if p.Category == "" {
		return p, fmt.Errorf("purchase category is missing: %w", ErrInvalidValue)
	}
	if !b.stock.Contains(p.Category) {
		return p, fmt.Errorf("unknown stock category %q: %w", p.Category, ErrInvalidValue)
	}
	if err := b.stamp(field{"amount", &p.Amount}); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks the fixed cost against the book and returns a copy with its
// concept trimmed and its amount stamped with the book currency.
func (f FixedCost) Validate(b *Book) (FixedCost, error) {
	f.Command = CmdFixed
	if f.On.IsZero() {
		return f, fmt.Errorf("fixed cost month is missing: %w", ErrInvalidValue)
	}
	f.Concept = normalizeLabel(f.Concept)
	if f.Concept == "" {
		return f, fmt.Errorf("fixed cost concept is missing: %w", ErrInvalidValue)
	}
	if !b.fixed.Contains(f.Concept) {
		return f, fmt.Errorf("unknown fixed concept %q: %w", f.Concept, ErrInvalidValue)
	}
	if err := b.stamp(field{"amount", &f.Amount}); err != nil {
		return f, err
	}
	if _, exists := b.byConcept[conceptKey{f.On, f.Concept}]; exists {
		return f, fmt.Errorf("a %s fixed cost already exists for %s: %w", f.Concept, f.On, ErrDuplicateKey)
	}
	return f, nil
}
