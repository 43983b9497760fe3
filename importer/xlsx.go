package importer

import (
	"fmt"
	"io"

	"github.com/etnz/cashbook"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads purchases from a sheet of a workbook, the first sheet when
// sheet is empty.
func ReadXLSX(r io.Reader, sheet string) (Batch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return purchases(rows)
}

// ExportXLSX writes an annual summary to w: a "Summary" sheet with one row per
// month and a total row, and one sheet per month listing its days.
func ExportXLSX(w io.Writer, s cashbook.AnnualSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	header := []any{"Month", "Days Open", "Sales", "Card", "Personnel", "Stock", "Fixed", "Other", "Discrepancy", "Profit", "Stock Ratio", "Cash Share"}
	if err := f.SetSheetRow(summary, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, m := range s.Months {
		if err := setTotalsRow(f, summary, row, m.Month.String(), m.Totals); err != nil {
			return err
		}
		row++
	}
	if err := setTotalsRow(f, summary, row, "Total", s.Totals); err != nil {
		return err
	}

	for _, m := range s.Months {
		name := m.Month.String()
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		header := []any{"Date", "Sales", "Card", "Expected Cash", "Counted", "Discrepancy", "Personnel", "Stock", "Other", "Fixed", "Profit"}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		for i, d := range m.Days {
			values := []any{
				d.Date.String(),
				d.Sales.AsFloat(), d.Card.AsFloat(), d.Theoretical.AsFloat(), d.Counted.AsFloat(),
				d.Discrepancy.AsFloat(), d.Personnel.AsFloat(), d.Stock.AsFloat(), d.Other.AsFloat(),
				d.Fixed.Round2().AsFloat(), d.Profit().Round2().AsFloat(),
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setTotalsRow(f *excelize.File, sheet string, row int, label string, t cashbook.Totals) error {
	values := []any{
		label, t.DaysOpen,
		t.Sales.AsFloat(), t.Card.AsFloat(), t.Personnel.AsFloat(), t.Stock.AsFloat(),
		t.Fixed.AsFloat(), t.Other.AsFloat(), t.Discrepancy.AsFloat(), t.Profit().AsFloat(),
		t.StockRatio().Decimal().Round(4).InexactFloat64(), t.CashShare().Decimal().Round(4).InexactFloat64(),
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
