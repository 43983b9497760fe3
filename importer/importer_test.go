package importer

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := `Date,Category,Amount,Memo
2024-03-01,Drinks,120.50,weekly order
2024-03-02, Food ,80,

2024-03-03,Cleaning,12.3,
`
	batch, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() unexpected error: %v", err)
	}
	if !slices.Equal(batch.Lines, []int{2, 3, 5}) {
		t.Errorf("ReadCSV() lines = %v, want [2 3 5]", batch.Lines)
	}
	got := batch.Purchases
	if len(got) != 3 {
		t.Fatalf("ReadCSV() returned %d purchases, want 3", len(got))
	}
	first := got[0]
	if first.Date != date.MustParse("2024-03-01") || first.Category != "Drinks" || first.Memo != "weekly order" {
		t.Errorf("first purchase = %+v", first)
	}
	if !first.Amount.Equal(cashbook.M(120.5, "")) {
		t.Errorf("first amount = %v, want 120.50", first.Amount)
	}
	if got[1].Category != "Food" {
		t.Errorf("second category = %q, want trimmed Food", got[1].Category)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "empty",
			input:   "",
			wantMsg: "empty file",
		},
		{
			name:    "missing column",
			input:   "date,amount\n2024-03-01,10\n",
			wantMsg: `missing column "category"`,
		},
		{
			name:    "bad date",
			input:   "date,category,amount\n2024-03-01,Food,10\n01/03/2024,Food,10\n",
			wantMsg: "line 3: invalid date (datetime)",
		},
		{
			name:    "bad amount",
			input:   "date,category,amount\n2024-03-01,Food,ten\n",
			wantMsg: "line 2: invalid amount (numeric)",
		},
		{
			name:    "missing category",
			input:   "date,category,amount\n2024-03-01,,10\n",
			wantMsg: "line 2: invalid category (required)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.input))
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("ReadCSV() error = %v, want ErrSchema", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("ReadCSV() error = %v, want it to contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestBatch_Import(t *testing.T) {
	input := "date,category,amount\n2024-03-01,Drinks,10\n\n2024-03-02,Food,-5\n"
	batch, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() unexpected error: %v", err)
	}
	b, err := cashbook.NewBook()
	if err != nil {
		t.Fatal(err)
	}
	_, err = batch.Import(b)
	if !errors.Is(err, cashbook.ErrInvalidValue) {
		t.Fatalf("Import() error = %v, want ErrInvalidValue", err)
	}
	if !strings.HasPrefix(err.Error(), "line 4: ") {
		t.Errorf("Import() error = %v, want it to name line 4", err)
	}
	if n := len(b.Purchases()); n != 0 {
		t.Errorf("len(Purchases()) = %d, want 0", n)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"date", "category", "amount"},
		{"2024-03-01", "Drinks", "100"},
		{"2024-03-02", "Food", "50.25"},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	batch, err := ReadXLSX(&buf, "")
	if err != nil {
		t.Fatalf("ReadXLSX() unexpected error: %v", err)
	}
	got := batch.Purchases
	if len(got) != 2 || !got[1].Amount.Equal(cashbook.M(50.25, "")) {
		t.Errorf("ReadXLSX() = %+v", got)
	}

	// the purchases go straight into a book.
	b, err := cashbook.NewBook()
	if err != nil {
		t.Fatal(err)
	}
	res, err := batch.Import(b)
	if err != nil {
		t.Fatalf("ImportStockPurchases() unexpected error: %v", err)
	}
	if res.Inserted != 2 {
		t.Errorf("ImportStockPurchases() = %v, want 2 inserted", res)
	}
}

func TestExportXLSX(t *testing.T) {
	b, err := cashbook.NewBook()
	if err != nil {
		t.Fatal(err)
	}
	c := cashbook.NewDailyClosing(date.MustParse("2024-03-01"), cashbook.M(1000, ""), cashbook.M(400, ""), cashbook.M(590, ""), cashbook.M(100, ""))
	if _, err := b.AddDailyClosing(c); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, b.AnnualSummary()); err != nil {
		t.Fatalf("ExportXLSX() unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() unexpected error: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Summary" || got[1] != "2024-03" {
		t.Errorf("GetSheetList() = %q, want Summary and 2024-03", got)
	}
	total, err := f.GetCellValue("Summary", "A3")
	if err != nil || total != "Total" {
		t.Errorf("A3 = %q, %v, want Total", total, err)
	}
	discrepancy, err := f.GetCellValue("2024-03", "F2")
	if err != nil || discrepancy != "-10" {
		t.Errorf("discrepancy cell = %q, %v, want -10", discrepancy, err)
	}
}
