package cashbook

import (
	"slices"

	"github.com/etnz/cashbook/date"
)

// Thresholds configures the alerts raised on a summary.
type Thresholds struct {
	// Shortfall raises CashShortfall when the discrepancy is strictly below it.
	Shortfall Money
	// StockHigh raises StockRatioHigh when the stock ratio is strictly above it.
	StockHigh Ratio
	// StockLow raises StockRatioLow when there is some stock and the stock
	// ratio is strictly below it.
	StockLow Ratio
	// CashShareLow raises CashShareLow when there are sales and the cash share
	// is strictly below it.
	CashShareLow Ratio
}

// DefaultThresholds returns the usual thresholds of a bar: a shortfall of
// more than 10, stock above 35% or below 15% of sales, cash under 10% of sales.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Shortfall:    M(-10, ""),
		StockHigh:    R(0.35),
		StockLow:     R(0.15),
		CashShareLow: R(0.10),
	}
}

// Alert identifies a condition worth the attention of the manager.
type Alert string

// Alerts raised by summaries.
const (
	CashShortfall  Alert = "cash-shortfall"
	StockRatioHigh Alert = "stock-ratio-high"
	StockRatioLow  Alert = "stock-ratio-low"
	CashShareLow   Alert = "cash-share-low"
)

// Message returns a human readable description of the alert.
func (a Alert) Message() string {
	switch a {
	case CashShortfall:
		return "Cash is missing from the drawer"
	case StockRatioHigh:
		return "Stock cost is suspiciously high compared to sales"
	case StockRatioLow:
		return "Stock cost is suspiciously low compared to sales"
	case CashShareLow:
		return "Very little of the sales was paid in cash"
	default:
		return string(a)
	}
}

// Totals are the summed figures of a period.
type Totals struct {
	Sales       Money
	Card        Money
	Personnel   Money
	Stock       Money // stock purchases plus the same-day stock of closings
	Fixed       Money
	Other       Money
	Discrepancy Money
	DaysOpen    int // number of closings
}

func zeroTotals(cur string) Totals {
	z := Money{cur: cur}
	return Totals{Sales: z, Card: z, Personnel: z, Stock: z, Fixed: z, Other: z, Discrepancy: z}
}

// Add returns the elementwise sum of t and u.
func (t Totals) Add(u Totals) Totals {
	return Totals{
		Sales:       t.Sales.Add(u.Sales),
		Card:        t.Card.Add(u.Card),
		Personnel:   t.Personnel.Add(u.Personnel),
		Stock:       t.Stock.Add(u.Stock),
		Fixed:       t.Fixed.Add(u.Fixed),
		Other:       t.Other.Add(u.Other),
		Discrepancy: t.Discrepancy.Add(u.Discrepancy),
		DaysOpen:    t.DaysOpen + u.DaysOpen,
	}
}

// Expenses is the sum of personnel, stock, fixed and other costs.
func (t Totals) Expenses() Money { return t.Personnel.Add(t.Stock).Add(t.Fixed).Add(t.Other) }

// Profit is sales minus expenses.
func (t Totals) Profit() Money { return t.Sales.Sub(t.Expenses()) }

// StockRatio is stock over sales, 0 without sales.
func (t Totals) StockRatio() Ratio { return ratio(t.Stock, t.Sales) }

// CashShare is the share of the sales paid in cash, 0 without sales.
func (t Totals) CashShare() Ratio { return ratio(t.Sales.Sub(t.Card), t.Sales) }

// FixedPerOpenDay is the fixed cost prorated on each day open, 0 when closed all period.
func (t Totals) FixedPerOpenDay() Money { return t.Fixed.DivN(t.DaysOpen) }

// Alerts returns the alerts raised by t, in a stable order.
func (t Totals) Alerts(th Thresholds) []Alert {
	var alerts []Alert
	if t.Discrepancy.LessThan(th.Shortfall) {
		alerts = append(alerts, CashShortfall)
	}
	stock := t.StockRatio()
	if stock.GreaterThan(th.StockHigh) {
		alerts = append(alerts, StockRatioHigh)
	}
	if t.Stock.IsPositive() && stock.LessThan(th.StockLow) {
		alerts = append(alerts, StockRatioLow)
	}
	if t.Sales.IsPositive() && t.CashShare().LessThan(th.CashShareLow) {
		alerts = append(alerts, CashShareLow)
	}
	return alerts
}

// MarshalJSON writes the totals followed by the derived metrics.
func (t Totals) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.put("sales", t.Sales)
	w.put("card", t.Card)
	w.put("personnel", t.Personnel)
	w.put("stock", t.Stock)
	w.put("fixed", t.Fixed)
	w.put("other", t.Other)
	w.put("discrepancy", t.Discrepancy)
	w.put("daysOpen", t.DaysOpen)
	w.put("profit", t.Profit())
	w.put("stockRatio", t.StockRatio())
	w.put("cashShare", t.CashShare())
	w.put("fixedPerOpenDay", t.FixedPerOpenDay())
	return w.finish()
}

// DayResult is the line of a closing in a monthly summary.
type DayResult struct {
	Date        date.Date
	Sales       Money
	Card        Money
	Theoretical Money
	Counted     Money
	Discrepancy Money
	Personnel   Money
	Stock       Money
	Other       Money
	Fixed       Money // prorated fixed cost of the month
}

// Profit is the sales of the day minus its expenses and its share of fixed costs.
func (d DayResult) Profit() Money {
	return d.Sales.Sub(d.Personnel.Add(d.Stock).Add(d.Other).Add(d.Fixed))
}

// MarshalJSON implements the json.Marshaler interface for DayResult.
func (d DayResult) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.put("date", d.Date)
	w.put("sales", d.Sales)
	w.put("card", d.Card)
	w.put("theoretical", d.Theoretical)
	w.put("counted", d.Counted)
	w.put("discrepancy", d.Discrepancy)
	w.put("personnel", d.Personnel)
	w.put("stock", d.Stock)
	w.put("other", d.Other)
	w.put("fixed", d.Fixed)
	w.put("profit", d.Profit())
	return w.finish()
}

// MonthlySummary aggregates the records of one month.
type MonthlySummary struct {
	Month  date.Month
	Totals Totals
	Alerts []Alert
	Days   []DayResult // one per closing, by date
}

// MarshalJSON implements the json.Marshaler interface for MonthlySummary.
func (s MonthlySummary) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.put("month", s.Month)
	w.put("totals", s.Totals)
	w.put("alerts", nonNil(s.Alerts))
	w.put("days", nonNil(s.Days))
	return w.finish()
}

// AnnualSummary aggregates monthly summaries.
type AnnualSummary struct {
	Months []MonthlySummary // ascending, only months with records
	Totals Totals
	Alerts []Alert
}

// MarshalJSON implements the json.Marshaler interface for AnnualSummary.
func (s AnnualSummary) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.put("months", nonNil(s.Months))
	w.put("totals", s.Totals)
	w.put("alerts", nonNil(s.Alerts))
	return w.finish()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MonthlySummary aggregates the records of a month. A month without records
// has zero totals and no alerts.
func (b *Book) MonthlySummary(month date.Month) MonthlySummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.monthlySummary(month)
}

func (b *Book) monthlySummary(month date.Month) MonthlySummary {
	t := zeroTotals(b.currency)
	var closings []DailyClosing
	for _, c := range b.closings {
		if c.Month() != month {
			continue
		}
		closings = append(closings, c)
		t.Sales = t.Sales.Add(c.Sales)
		t.Card = t.Card.Add(c.Card)
		t.Personnel = t.Personnel.Add(c.Personnel)
		t.Stock = t.Stock.Add(c.Stock)
		t.Other = t.Other.Add(c.Other)
		t.Discrepancy = t.Discrepancy.Add(c.Discrepancy())
		t.DaysOpen++
	}
	for _, p := range b.purchases {
		if p.Month() == month {
			t.Stock = t.Stock.Add(p.Amount)
		}
	}
	for _, f := range b.costs {
		if f.Month() == month {
			t.Fixed = t.Fixed.Add(f.Amount)
		}
	}

	slices.SortStableFunc(closings, func(a, b DailyClosing) int { return a.Date.Compare(b.Date) })
	prorated := t.FixedPerOpenDay()
	days := make([]DayResult, len(closings))
	for i, c := range closings {
		check := c.Check()
		days[i] = DayResult{
			Date:        c.Date,
			Sales:       c.Sales,
			Card:        c.Card,
			Theoretical: check.Theoretical,
			Counted:     c.Counted,
			Discrepancy: check.Discrepancy,
			Personnel:   c.Personnel,
			Stock:       c.Stock,
			Other:       c.Other,
			Fixed:       prorated,
		}
	}
	return MonthlySummary{
		Month:  month,
		Totals: t,
		Alerts: t.Alerts(b.thresholds),
		Days:   days,
	}
}

// AnnualSummary aggregates every month having at least one record, in
// ascending order. Months without records are not synthesized.
func (b *Book) AnnualSummary() AnnualSummary {
	return b.annualSummary(func(date.Month) bool { return true })
}

// YearSummary is like AnnualSummary restricted to the months of a calendar year.
func (b *Book) YearSummary(year int) AnnualSummary {
	return b.annualSummary(func(m date.Month) bool { return m.Year() == year })
}

func (b *Book) annualSummary(keep func(date.Month) bool) AnnualSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := AnnualSummary{Totals: zeroTotals(b.currency)}
	for _, m := range b.monthKeys() {
		if !keep(m) {
			continue
		}
		ms := b.monthlySummary(m)
		s.Months = append(s.Months, ms)
		s.Totals = s.Totals.Add(ms.Totals)
	}
	s.Alerts = s.Totals.Alerts(b.thresholds)
	return s
}
