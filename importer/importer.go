// Package importer reads stock purchases from spreadsheets (CSV or XLSX) and
// exports summaries to XLSX.
//
// Input rows are checked against a strict schema before anything reaches the
// Book: a header row naming the columns date, category and amount (memo is
// optional), a date in YYYY-MM-DD format, a non empty category and a numeric
// amount.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrSchema reports an input that does not follow the import schema.
var ErrSchema = errors.New("invalid import file")

// Row is a raw purchase row as read from a file.
type Row struct {
	Date     string `validate:"required,datetime=2006-01-02"`
	Category string `validate:"required"`
	Amount   string `validate:"required,numeric"`
	Memo     string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// columns maps a header name to its position.
type columns map[string]int

func parseHeader(header []string) (columns, error) {
	cols := make(columns)
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"date", "category", "amount"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header %q: %w", name, header, ErrSchema)
		}
	}
	return cols, nil
}

func (c columns) row(record []string) Row {
	get := func(name string) string {
		i, ok := c[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return Row{
		Date:     get("date"),
		Category: get("category"),
		Amount:   get("amount"),
		Memo:     get("memo"),
	}
}

// Purchase checks the row against the schema and converts it.
func (r Row) Purchase() (cashbook.StockPurchase, error) {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag())
			}
			return cashbook.StockPurchase{}, fmt.Errorf("invalid %s: %w", strings.Join(fields, ", "), ErrSchema)
		}
		return cashbook.StockPurchase{}, err
	}
	day, err := date.Parse(r.Date)
	if err != nil {
		return cashbook.StockPurchase{}, fmt.Errorf("invalid date %q: %w", r.Date, ErrSchema)
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return cashbook.StockPurchase{}, fmt.Errorf("invalid amount %q: %w", r.Amount, ErrSchema)
	}
	p := cashbook.NewStockPurchase(day, r.Category, cashbook.M(amount, ""))
	p.Memo = r.Memo
	return p, nil
}

// Batch is the purchases read from a file.
type Batch struct {
	Purchases []cashbook.StockPurchase
	Lines     []int // Lines[i] is the file line of Purchases[i], counting the header.
}

// Import records the batch in b. An invalid purchase is reported with its
// file line.
func (batch Batch) Import(b *cashbook.Book) (cashbook.ImportResult, error) {
	res, err := b.ImportStockPurchases(batch.Purchases)
	var rerr *cashbook.RowError
	if errors.As(err, &rerr) && rerr.Index < len(batch.Lines) {
		return res, fmt.Errorf("line %d: %w", batch.Lines[rerr.Index], rerr.Err)
	}
	return res, err
}

// purchases converts records (header first) into purchases. Line numbers are
// 1-based and count the header.
func purchases(records [][]string) (Batch, error) {
	if len(records) == 0 {
		return Batch{}, fmt.Errorf("empty file: %w", ErrSchema)
	}
	cols, err := parseHeader(records[0])
	if err != nil {
		return Batch{}, err
	}
	var batch Batch
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		p, err := cols.row(record).Purchase()
		if err != nil {
			return Batch{}, fmt.Errorf("line %d: %w", i+2, err)
		}
		batch.Purchases = append(batch.Purchases, p)
		batch.Lines = append(batch.Lines, i+2)
	}
	return batch, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
