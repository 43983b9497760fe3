// Package renderer turns cashbook summaries and records into markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	md "github.com/nao1215/markdown"
)

// RenderOptions holds configuration for rendering a summary.
type RenderOptions struct {
	SkipDays bool // Do not render the per-day table of a month.
}

// MonthMarkdown renders a monthly summary: the key figures, the alerts and
// the table of the days.
func MonthMarkdown(s cashbook.MonthlySummary, opts RenderOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Summary for %s", s.Month.Name()))
	if s.Totals.DaysOpen == 0 && s.Totals.Stock.IsZero() && s.Totals.Fixed.IsZero() {
		doc.PlainText("Nothing recorded for this month.")
		return doc.String()
	}

	totalsTable(doc, s.Totals)
	alertList(doc, s.Alerts)

	if !opts.SkipDays && len(s.Days) > 0 {
		doc.H2("Days")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
				md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{
				"Date", "Sales", "Card", "Expected Cash", "Counted", "Discrepancy",
				"Personnel", "Stock", "Other", "Fixed", "Profit",
			},
		}
		for _, d := range s.Days {
			table.Rows = append(table.Rows, []string{
				d.Date.String(),
				d.Sales.String(),
				d.Card.String(),
				d.Theoretical.String(),
				d.Counted.String(),
				discrepancy(d.Discrepancy),
				d.Personnel.String(),
				optional(d.Stock),
				optional(d.Other),
				d.Fixed.String(),
				d.Profit().String(),
			})
		}
		doc.Table(table)
	}
	return doc.String()
}

// AnnualMarkdown renders an annual summary: one row per month and a total row.
func AnnualMarkdown(title string, s cashbook.AnnualSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(s.Months) == 0 {
		doc.PlainText("Nothing recorded yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"Month", "Days", "Sales", "Stock", "Stock %", "Fixed", "Discrepancy", "Profit", "Alerts"},
	}
	for _, m := range s.Months {
		table.Rows = append(table.Rows, monthRow(m.Month.String(), m.Totals, m.Alerts))
	}
	total := monthRow("Total", s.Totals, nil)
	for i, cell := range total {
		if cell != "" {
			total[i] = md.Bold(cell)
		}
	}
	table.Rows = append(table.Rows, total)
	doc.Table(table)

	alertList(doc, s.Alerts)
	return doc.String()
}

func monthRow(label string, t cashbook.Totals, alerts []cashbook.Alert) []string {
	var flags string
	for i, a := range alerts {
		if i > 0 {
			flags += ", "
		}
		flags += string(a)
	}
	return []string{
		label,
		strconv.Itoa(t.DaysOpen),
		t.Sales.String(),
		t.Stock.String(),
		t.StockRatio().String(),
		t.Fixed.String(),
		discrepancy(t.Discrepancy),
		t.Profit().String(),
		flags,
	}
}

// MonthKeysMarkdown renders the list of months having records.
func MonthKeysMarkdown(keys []date.Month) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Months")
	if len(keys) == 0 {
		doc.PlainText("Nothing recorded yet.")
		return doc.String()
	}
	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = fmt.Sprintf("%s (%s)", k, k.Name())
	}
	doc.BulletList(items...)
	return doc.String()
}

// CategoriesMarkdown renders the labels of a category set.
func CategoriesMarkdown(kind cashbook.CategoryKind, labels []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	switch kind {
	case cashbook.FixedConcept:
		doc.H2("Fixed Cost Concepts")
	default:
		doc.H2("Stock Categories")
	}
	doc.BulletList(labels...)
	return doc.String()
}

func totalsTable(doc *md.Markdown, t cashbook.Totals) {
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Profit"), md.Bold(t.Profit().String())},
		Rows: [][]string{
			{"Sales", t.Sales.String()},
			{"Paid by Card", t.Card.String()},
			{"Cash Share", t.CashShare().String()},
			{"Discrepancy", discrepancy(t.Discrepancy)},
			{"Personnel", t.Personnel.String()},
			{"Stock", t.Stock.String()},
			{"Stock Ratio", t.StockRatio().String()},
			{"Fixed Costs", t.Fixed.String()},
			{"Fixed per Open Day", t.FixedPerOpenDay().String()},
			{"Other", t.Other.String()},
			{"Days Open", strconv.Itoa(t.DaysOpen)},
		},
	})
}

func alertList(doc *md.Markdown, alerts []cashbook.Alert) {
	if len(alerts) == 0 {
		return
	}
	doc.H2("Alerts")
	items := make([]string, len(alerts))
	for i, a := range alerts {
		items[i] = fmt.Sprintf("%s: %s", md.Bold(string(a)), a.Message())
	}
	doc.BulletList(items...)
}

// discrepancy renders a signed discrepancy, a shortfall is negative.
func discrepancy(m cashbook.Money) string {
	if m.IsZero() {
		return "0"
	}
	return m.SignedString()
}

// optional renders zero as an empty cell.
func optional(m cashbook.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}
