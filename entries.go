package cashbook

import (
	"github.com/etnz/cashbook/date"
	"github.com/google/uuid"
)

// CommandType is a typed string for identifying book entries.
type CommandType string

// Command types used for identifying entries in the journal.
const (
	CmdInit     CommandType = "init"
	CmdCategory CommandType = "category"
	CmdClose    CommandType = "close"
	CmdStock    CommandType = "stock"
	CmdFixed    CommandType = "fixed"
)

// Entry defines the common interface of the records kept by a Book.
type Entry interface {
	What() CommandType  // What returns the command type of the entry (e.g., "close", "stock").
	Month() date.Month  // Month returns the month key the entry is aggregated into.
	Identifier() string // Identifier returns the unique ID assigned when the entry was recorded.
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of entry.
	ID      string      `json:"id,omitempty"`   // ID is assigned by the book when missing.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note.
}

// What returns the command name of the entry.
func (t baseCmd) What() CommandType { return t.Command }

// Identifier returns the entry ID.
func (t baseCmd) Identifier() string { return t.ID }

// identify assigns a fresh ID when there is none.
func (t *baseCmd) identify() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}

func (t baseCmd) write(w *objectWriter) {
	w.put("command", t.Command)
	w.text("id", t.ID)
}

// DailyClosing is the register closing of one day: the machine-reported
// total (the Z report), what was paid by card, the cash actually counted
// in the drawer, and the day's expenses.
type DailyClosing struct {
	baseCmd
	Date      date.Date `json:"date"`
	Sales     Money     `json:"sales"`     // Sales is the machine-reported total.
	Card      Money     `json:"card"`      // Card is the total paid by card.
	Counted   Money     `json:"counted"`   // Counted is the cash counted in the drawer.
	Personnel Money     `json:"personnel"` // Personnel is the staff cost of the day.
	Stock     Money     `json:"stock"`     // Stock is the stock bought and paid the same day, optional.
	Other     Money     `json:"other"`     // Other groups any other expense of the day, optional.
}

// NewDailyClosing creates a new DailyClosing.
func NewDailyClosing(day date.Date, sales, card, counted, personnel Money) DailyClosing {
	return DailyClosing{
		baseCmd:   baseCmd{Command: CmdClose},
		Date:      day,
		Sales:     sales,
		Card:      card,
		Counted:   counted,
		Personnel: personnel,
	}
}

// WithStock returns a copy of c with a same-day stock spend.
func (c DailyClosing) WithStock(stock Money) DailyClosing {
	c.Stock = stock
	return c
}

// WithOther returns a copy of c with other same-day expenses.
func (c DailyClosing) WithOther(other Money) DailyClosing {
	c.Other = other
	return c
}

// WithMemo returns a copy of c with a memo.
func (c DailyClosing) WithMemo(memo string) DailyClosing {
	c.Memo = memo
	return c
}

func (c DailyClosing) Month() date.Month { return c.Date.MonthKey() }

// Check reconciles the closing.
func (c DailyClosing) Check() CashCheck { return Reconcile(c.Sales, c.Card, c.Counted) }

// TheoreticalCash is the cash expected in the drawer.
func (c DailyClosing) TheoreticalCash() Money { return c.Check().Theoretical }

// Discrepancy is the counted cash minus the theoretical cash.
func (c DailyClosing) Discrepancy() Money { return c.Check().Discrepancy }

// MarshalJSON implements the json.Marshaler interface for DailyClosing.
func (c DailyClosing) MarshalJSON() ([]byte, error) {
	var w objectWriter
	c.baseCmd.write(&w)
	w.put("date", c.Date)
	w.amount("sales", c.Sales)
	w.amount("card", c.Card)
	w.amount("counted", c.Counted)
	w.amount("personnel", c.Personnel)
	w.extra("stock", c.Stock)
	w.extra("other", c.Other)
	w.text("memo", c.Memo)
	return w.finish()
}

// StockPurchase is a purchase of stock (drinks, food...) on a given day.
type StockPurchase struct {
	baseCmd
	Date     date.Date `json:"date"`
	Category string    `json:"category"`
	Amount   Money     `json:"amount"`
}

// NewStockPurchase creates a new StockPurchase.
func NewStockPurchase(day date.Date, category string, amount Money) StockPurchase {
	return StockPurchase{
		baseCmd:  baseCmd{Command: CmdStock},
		Date:     day,
		Category: category,
		Amount:   amount,
	}
}

func (p StockPurchase) Month() date.Month { return p.Date.MonthKey() }

// Same reports whether p and o record the same date, category and amount.
func (p StockPurchase) Same(o StockPurchase) bool {
	return p.Date == o.Date && p.Category == o.Category && p.Amount.value.Equal(o.Amount.value)
}

// MarshalJSON implements the json.Marshaler interface for StockPurchase.
func (p StockPurchase) MarshalJSON() ([]byte, error) {
	var w objectWriter
	p.baseCmd.write(&w)
	w.put("date", p.Date)
	w.put("category", p.Category)
	w.amount("amount", p.Amount)
	w.text("memo", p.Memo)
	return w.finish()
}

// FixedCost is a monthly fixed expense (rent, utilities...) for a concept.
type FixedCost struct {
	baseCmd
	On      date.Month `json:"month"`
	Concept string     `json:"concept"`
	Amount  Money      `json:"amount"`
}

// NewFixedCost creates a new FixedCost.
func NewFixedCost(month date.Month, concept string, amount Money) FixedCost {
	return FixedCost{
		baseCmd: baseCmd{Command: CmdFixed},
		On:      month,
		Concept: concept,
		Amount:  amount,
	}
}

func (f FixedCost) Month() date.Month { return f.On }

// MarshalJSON implements the json.Marshaler interface for FixedCost.
func (f FixedCost) MarshalJSON() ([]byte, error) {
	var w objectWriter
	f.baseCmd.write(&w)
	w.put("month", f.On)
	w.put("concept", f.Concept)
	w.amount("amount", f.Amount)
	w.text("memo", f.Memo)
	return w.finish()
}
