package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashbook"
	md "github.com/nao1215/markdown"
)

// Entry renders a record to a single line.
func Entry(e cashbook.Entry) string {
	switch v := e.(type) {
	case cashbook.DailyClosing:
		return fmt.Sprintf("Closed %s: sales %s, card %s, counted %s, discrepancy %s",
			v.Date, v.Sales, v.Card, v.Counted, discrepancy(v.Discrepancy()))
	case cashbook.StockPurchase:
		return fmt.Sprintf("Bought %s of %s on %s", v.Amount, v.Category, v.Date)
	case cashbook.FixedCost:
		return fmt.Sprintf("Fixed cost %s of %s for %s", v.Concept, v.Amount, v.On)
	default:
		return string(e.What())
	}
}

// ClosingMarkdown renders the reconciliation of a single closing.
func ClosingMarkdown(c cashbook.DailyClosing) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Closing of %s", c.Date))
	rows := [][]string{
		{"Sales (Z)", c.Sales.String()},
		{"Paid by Card", c.Card.String()},
		{"Expected Cash", c.TheoreticalCash().String()},
		{"Counted Cash", c.Counted.String()},
		{"Personnel", c.Personnel.String()},
	}
	if !c.Stock.IsZero() {
		rows = append(rows, []string{"Stock", c.Stock.String()})
	}
	if !c.Other.IsZero() {
		rows = append(rows, []string{"Other", c.Other.String()})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Discrepancy"), md.Bold(discrepancy(c.Discrepancy()))},
		Rows:      rows,
	})
	if c.TheoreticalCash().IsNegative() {
		doc.PlainText("Card payments exceed the reported sales, check the Z report.")
		doc.LF()
	}
	if c.Memo != "" {
		doc.PlainText(md.Italic(c.Memo))
	}
	return doc.String()
}

// EntriesMarkdown renders a list of records.
func EntriesMarkdown(title string, entries []cashbook.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(title)
	if len(entries) == 0 {
		doc.PlainText("No records.")
		return doc.String()
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = Entry(e)
	}
	doc.OrderedList(lines...)
	return doc.String()
}
