package renderer

import (
	"slices"
	"strings"
	"testing"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the part of a rendered markdown the tests look at.
type document struct {
	headings []string
	rows     [][]string
	items    []string
}

// parse parses markdown with the table extension and collects headings,
// table rows (header included) and list items.
func parse(t *testing.T, src string) document {
	t.Helper()
	source := []byte(src)
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := p.Parse(text.NewReader(source))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(v, source))
			return ast.WalkSkipChildren, nil
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, plain(c, source))
			}
			doc.rows = append(doc.rows, row)
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			doc.items = append(doc.items, plain(v, source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return doc
}

// plain concatenates the text segments below n.
func plain(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// row returns the first table row starting with label.
func (d document) row(label string) []string {
	for _, r := range d.rows {
		if len(r) > 0 && r[0] == label {
			return r
		}
	}
	return nil
}

func newBook(t *testing.T) *cashbook.Book {
	t.Helper()
	b, err := cashbook.NewBook()
	if err != nil {
		t.Fatal(err)
	}
	closings := []cashbook.DailyClosing{
		cashbook.NewDailyClosing(date.MustParse("2024-03-01"), cashbook.M(1000, ""), cashbook.M(400, ""), cashbook.M(570, ""), cashbook.M(100, "")),
		cashbook.NewDailyClosing(date.MustParse("2024-03-02"), cashbook.M(500, ""), cashbook.M(100, ""), cashbook.M(400, ""), cashbook.M(100, "")).WithStock(cashbook.M(50, "")),
		cashbook.NewDailyClosing(date.MustParse("2024-05-01"), cashbook.M(100, ""), cashbook.M(0, ""), cashbook.M(100, ""), cashbook.M(0, "")),
	}
	for _, c := range closings {
		if _, err := b.AddDailyClosing(c); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.AddFixedCost(cashbook.NewFixedCost(date.MustParseMonth("2024-03"), "Rent", cashbook.M(300, ""))); err != nil {
		t.Fatal(err)
	}
	if _, _, err := b.AddStockPurchase(cashbook.NewStockPurchase(date.MustParse("2024-03-05"), "Drinks", cashbook.M(700, ""))); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestMonthMarkdown(t *testing.T) {
	b := newBook(t)
	s := b.MonthlySummary(date.MustParseMonth("2024-03"))

	doc := parse(t, MonthMarkdown(s, RenderOptions{}))

	wantHeadings := []string{"Summary for March 2024", "Alerts", "Days"}
	if !slices.Equal(doc.headings, wantHeadings) {
		t.Errorf("headings = %q, want %q", doc.headings, wantHeadings)
	}
	if r := doc.row("Days Open"); len(r) != 2 || r[1] != "2" {
		t.Errorf("Days Open row = %q", r)
	}
	if r := doc.row("Stock Ratio"); len(r) != 2 || r[1] != "50.0%" {
		t.Errorf("Stock Ratio row = %q, want 50.0%%", r)
	}
	// the table has a header and one row per closing.
	if r := doc.row("2024-03-01"); len(r) != 11 {
		t.Errorf("row of 2024-03-01 = %q, want 11 cells", r)
	}
	if r := doc.row("2024-03-02"); len(r) != 11 || r[5] != "0" {
		t.Errorf("row of 2024-03-02 = %q, want a zero discrepancy", r)
	}
	if len(doc.items) != 2 {
		t.Errorf("alerts = %q, want cash shortfall and high stock ratio", doc.items)
	}
}

func TestMonthMarkdown_SkipDays(t *testing.T) {
	b := newBook(t)
	s := b.MonthlySummary(date.MustParseMonth("2024-05"))
	doc := parse(t, MonthMarkdown(s, RenderOptions{SkipDays: true}))
	if slices.Contains(doc.headings, "Days") {
		t.Errorf("headings = %q, want no Days section", doc.headings)
	}
}

func TestMonthMarkdown_Empty(t *testing.T) {
	b := newBook(t)
	got := MonthMarkdown(b.MonthlySummary(date.MustParseMonth("2023-01")), RenderOptions{})
	if !strings.Contains(got, "Nothing recorded") {
		t.Errorf("MonthMarkdown() = %q, want a notice", got)
	}
}

func TestAnnualMarkdown(t *testing.T) {
	b := newBook(t)
	doc := parse(t, AnnualMarkdown("Annual Summary", b.AnnualSummary()))

	var months []string
	for _, r := range doc.rows[1:] {
		months = append(months, r[0])
	}
	want := []string{"2024-03", "2024-05", "Total"}
	if !slices.Equal(months, want) {
		t.Errorf("months = %q, want %q", months, want)
	}
	if r := doc.row("Total"); len(r) != 9 || r[1] != "3" {
		t.Errorf("Total row = %q, want 3 days", r)
	}
}

func TestMonthKeysMarkdown(t *testing.T) {
	b := newBook(t)
	doc := parse(t, MonthKeysMarkdown(b.MonthKeys()))
	want := []string{"2024-03 (March 2024)", "2024-05 (May 2024)"}
	if !slices.Equal(doc.items, want) {
		t.Errorf("items = %q, want %q", doc.items, want)
	}
}

func TestClosingMarkdown(t *testing.T) {
	c := cashbook.NewDailyClosing(date.MustParse("2024-03-01"), cashbook.M(100, "EUR"), cashbook.M(150, "EUR"), cashbook.M(0, "EUR"), cashbook.M(0, "EUR")).WithMemo("terminal glitch")
	got := ClosingMarkdown(c)
	if !strings.Contains(got, "Card payments exceed the reported sales") {
		t.Errorf("ClosingMarkdown() = %q, want a warning about card payments", got)
	}
	doc := parse(t, got)
	if r := doc.row("Counted Cash"); len(r) != 2 {
		t.Errorf("Counted Cash row = %q", r)
	}
}

func TestEntry(t *testing.T) {
	p := cashbook.NewStockPurchase(date.MustParse("2024-03-05"), "Drinks", cashbook.M(70, ""))
	if got := Entry(p); !strings.HasPrefix(got, "Bought 70.00 of Drinks on 2024-03-05") {
		t.Errorf("Entry() = %q", got)
	}
}

func TestEntriesMarkdown(t *testing.T) {
	b := newBook(t)
	doc := parse(t, EntriesMarkdown("Records", slices.Collect(b.Entries(date.MustParseMonth("2024-03")))))

	if !slices.Equal(doc.headings, []string{"Records"}) {
		t.Errorf("headings = %q", doc.headings)
	}
	// two closings, the rent, then the purchase: the order they were entered in.
	if len(doc.items) != 4 {
		t.Fatalf("items = %q, want 4 records", doc.items)
	}
	if !strings.HasPrefix(doc.items[2], "Fixed cost Rent") || !strings.HasPrefix(doc.items[3], "Bought") {
		t.Errorf("items = %q, want the rent then the purchase last", doc.items)
	}

	empty := EntriesMarkdown("Records", nil)
	if !strings.Contains(empty, "No records.") {
		t.Errorf("EntriesMarkdown(nil) = %q", empty)
	}
}
