package cashbook

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/etnz/cashbook/date"
	"go.uber.org/zap"
)

// Book holds the records of a single venue: daily closings, stock purchases,
// monthly fixed costs and the two label sets used to classify them.
//
// Records are append-only: once inserted they are never updated or removed.
// A Book is safe for concurrent use.
type Book struct {
	mu sync.RWMutex

	currency   string
	thresholds Thresholds
	log        *zap.Logger

	closings  []DailyClosing
	purchases []StockPurchase
	costs     []FixedCost
	stock     *CategorySet
	fixed     *CategorySet

	byDate    map[date.Date]int // index of closings by date
	byConcept map[conceptKey]int
	// journal keeps every accepted record in insertion order.
	journal []any
}

type conceptKey struct {
	month   date.Month
	concept string
}

// Option configures a Book.
type Option func(*Book) error

// WithCurrency sets the currency of the book, EUR by default.
func WithCurrency(code string) Option {
	return func(b *Book) error {
		if money.GetCurrency(code) == nil {
			return fmt.Errorf("unknown currency %q: %w", code, ErrInvalidValue)
		}
		b.currency = code
		return nil
	}
}

// WithThresholds sets the alert thresholds.
func WithThresholds(t Thresholds) Option {
	return func(b *Book) error {
		b.thresholds = t
		return nil
	}
}

// WithLogger sets the logger, nothing is logged by default.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) error {
		if l != nil {
			b.log = l
		}
		return nil
	}
}

// NewBook creates an empty Book seeded with the default labels.
func NewBook(opts ...Option) (*Book, error) {
	b := &Book{
		currency:   "EUR",
		thresholds: DefaultThresholds(),
		log:        zap.NewNop(),
		stock:      NewCategorySet(DefaultStockCategories...),
		fixed:      NewCategorySet(DefaultFixedConcepts...),
		byDate:     make(map[date.Date]int),
		byConcept:  make(map[conceptKey]int),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Currency returns the book currency code.
func (b *Book) Currency() string { return b.currency }

// Thresholds returns the alert thresholds.
func (b *Book) Thresholds() Thresholds { return b.thresholds }

// AddDailyClosing records the register closing of a day.
//
// It fails with ErrDuplicateKey if a closing already exists for that date, and
// with ErrInvalidValue if any amount is negative. The recorded closing is
// returned with its ID.
func (b *Book) AddDailyClosing(c DailyClosing) (DailyClosing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, err := c.Validate(b)
	if err != nil {
		return c, fmt.Errorf("cannot close %s: %w", c.Date, err)
	}
	c.identify()
	b.byDate[c.Date] = len(b.closings)
	b.closings = append(b.closings, c)
	b.journal = append(b.journal, c)
	b.log.Debug("closing recorded",
		zap.Stringer("date", c.Date),
		zap.Stringer("sales", c.Sales),
		zap.Stringer("discrepancy", c.Discrepancy()))
	return c, nil
}

// AddFixedCost records the fixed cost of a concept for a month.
//
// It fails with ErrDuplicateKey if that concept already has a cost for the month.
func (b *Book) AddFixedCost(f FixedCost) (FixedCost, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := f.Validate(b)
	if err != nil {
		return f, fmt.Errorf("cannot record fixed cost: %w", err)
	}
	f.identify()
	b.byConcept[conceptKey{f.On, f.Concept}] = len(b.costs)
	b.costs = append(b.costs, f)
	b.journal = append(b.journal, f)
	b.log.Debug("fixed cost recorded",
		zap.Stringer("month", f.On),
		zap.String("concept", f.Concept),
		zap.Stringer("amount", f.Amount))
	return f, nil
}

// AddStockPurchase records a stock purchase.
//
// Purchases have no unique key and are always recorded when valid.
// possibleDuplicate is true when an identical purchase (same date, category
// and amount) was already recorded; it is advisory only.
func (b *Book) AddStockPurchase(p StockPurchase) (_ StockPurchase, possibleDuplicate bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err = p.Validate(b)
	if err != nil {
		return p, false, fmt.Errorf("cannot record purchase: %w", err)
	}
	possibleDuplicate = b.hasPurchase(p)
	b.appendPurchase(p)
	if possibleDuplicate {
		b.log.Warn("possible duplicate purchase",
			zap.Stringer("date", p.Date),
			zap.String("category", p.Category),
			zap.Stringer("amount", p.Amount))
	}
	return b.purchases[len(b.purchases)-1], possibleDuplicate, nil
}

// ImportStockPurchases records a batch of purchases.
//
// Every row is validated first: if any row is invalid nothing is recorded and
// the error is a *RowError naming the first invalid row. Then rows are recorded in
// order, skipping any row identical to an already recorded purchase,
// including one recorded earlier in the same batch.
func (b *Book) ImportStockPurchases(rows []StockPurchase) (ImportResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	valid := make([]StockPurchase, len(rows))
	for i, row := range rows {
		p, err := row.Validate(b)
		if err != nil {
			return ImportResult{}, &RowError{Index: i, Err: err}
		}
		valid[i] = p
	}

	var res ImportResult
	for _, p := range valid {
		if b.hasPurchase(p) {
			res.Skipped++
			continue
		}
		b.appendPurchase(p)
		res.Inserted++
	}
	b.log.Info("purchases imported",
		zap.Int("rows", len(rows)),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (b *Book) hasPurchase(p StockPurchase) bool {
	return slices.ContainsFunc(b.purchases, p.Same)
}

func (b *Book) appendPurchase(p StockPurchase) {
	p.identify()
	b.purchases = append(b.purchases, p)
	b.journal = append(b.journal, p)
}

// AddCategory adds a label to the stock categories or the fixed concepts.
//
// Adding a known label returns ErrAlreadyExists and changes nothing; callers
// usually treat it as success. An empty label is ErrInvalidValue.
func (b *Book) AddCategory(kind CategoryKind, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, err := b.set(kind)
	if err != nil {
		return err
	}
	if err := set.add(label); err != nil {
		return fmt.Errorf("cannot add %s category: %w", kind, err)
	}
	b.journal = append(b.journal, Label{Kind: kind, Label: normalizeLabel(label)})
	b.log.Debug("category added", zap.Stringer("kind", kind), zap.String("label", label))
	return nil
}

func (b *Book) set(kind CategoryKind) (*CategorySet, error) {
	switch kind {
	case StockCategory:
		return b.stock, nil
	case FixedConcept:
		return b.fixed, nil
	default:
		return nil, fmt.Errorf("unknown category kind %d: %w", kind, ErrInvalidValue)
	}
}

// Categories returns the labels of a kind in insertion order.
func (b *Book) Categories(kind CategoryKind) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	set, err := b.set(kind)
	if err != nil {
		return nil
	}
	return set.Labels()
}

// HasCategory reports whether label is known for kind.
func (b *Book) HasCategory(kind CategoryKind, label string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	set, err := b.set(kind)
	return err == nil && set.Contains(label)
}

// Closing returns the closing of a day, if any.
func (b *Book) Closing(day date.Date) (DailyClosing, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.byDate[day]
	if !ok {
		return DailyClosing{}, false
	}
	return b.closings[i], true
}

// Closings returns a copy of the closings in insertion order.
func (b *Book) Closings() []DailyClosing {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.closings)
}

// Purchases returns a copy of the stock purchases in insertion order.
func (b *Book) Purchases() []StockPurchase {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.purchases)
}

// FixedCosts returns a copy of the fixed costs in insertion order.
func (b *Book) FixedCosts() []FixedCost {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.costs)
}

// Entries returns an iterator over the closings, purchases and fixed costs
// of a month, in insertion order.
func (b *Book) Entries(month date.Month) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		b.mu.RLock()
		defer b.mu.RUnlock()
		for _, rec := range b.journal {
			e, ok := rec.(Entry)
			if !ok || e.Month() != month {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// MonthKeys returns the union of the month keys found in the three
// collections, in ascending order.
func (b *Book) MonthKeys() []date.Month {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.monthKeys()
}

func (b *Book) monthKeys() []date.Month {
	seen := make(map[date.Month]struct{})
	for _, c := range b.closings {
		seen[c.Month()] = struct{}{}
	}
	for _, p := range b.purchases {
		seen[p.Month()] = struct{}{}
	}
	for _, f := range b.costs {
		seen[f.Month()] = struct{}{}
	}
	keys := make([]date.Month, 0, len(seen))
	for m := range seen {
		keys = append(keys, m)
	}
	slices.SortFunc(keys, date.Month.Compare)
	return keys
}

// replay applies one decoded record through the insert path.
func (b *Book) replay(rec any) error {
	var err error
	switch v := rec.(type) {
	case DailyClosing:
		_, err = b.AddDailyClosing(v)
	case StockPurchase:
		_, _, err = b.AddStockPurchase(v)
	case FixedCost:
		_, err = b.AddFixedCost(v)
	case Label:
		err = b.AddCategory(v.Kind, v.Label)
		if errors.Is(err, ErrAlreadyExists) {
			err = nil
		}
	default:
		err = fmt.Errorf("unsupported record %T", rec)
	}
	return err
}
