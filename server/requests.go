package server

import (
	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/shopspring/decimal"
)

// closingRequest is the body of POST /api/closings.
type closingRequest struct {
	Date      string           `json:"date" binding:"required,datetime=2006-01-02"`
	Sales     *decimal.Decimal `json:"sales" binding:"required"`
	Card      *decimal.Decimal `json:"card" binding:"required"`
	Counted   *decimal.Decimal `json:"counted" binding:"required"`
	Personnel *decimal.Decimal `json:"personnel" binding:"required"`
	Stock     decimal.Decimal  `json:"stock"`
	Other     decimal.Decimal  `json:"other"`
	Memo      string           `json:"memo"`
}

func (r closingRequest) closing() (cashbook.DailyClosing, error) {
	day, err := date.Parse(r.Date)
	if err != nil {
		return cashbook.DailyClosing{}, err
	}
	return cashbook.NewDailyClosing(day, amount(*r.Sales), amount(*r.Card), amount(*r.Counted), amount(*r.Personnel)).
		WithStock(amount(r.Stock)).
		WithOther(amount(r.Other)).
		WithMemo(r.Memo), nil
}

// purchaseRequest is the body of POST /api/stock, and an item of
// POST /api/stock/import.
type purchaseRequest struct {
	Date     string           `json:"date" binding:"required,datetime=2006-01-02"`
	Category string           `json:"category" binding:"required"`
	Amount   *decimal.Decimal `json:"amount" binding:"required"`
	Memo     string           `json:"memo"`
}

func (r purchaseRequest) purchase() (cashbook.StockPurchase, error) {
	day, err := date.Parse(r.Date)
	if err != nil {
		return cashbook.StockPurchase{}, err
	}
	p := cashbook.NewStockPurchase(day, r.Category, amount(*r.Amount))
	p.Memo = r.Memo
	return p, nil
}

// fixedRequest is the body of POST /api/fixed.
type fixedRequest struct {
	Month   string           `json:"month" binding:"required"`
	Concept string           `json:"concept" binding:"required"`
	Amount  *decimal.Decimal `json:"amount" binding:"required"`
	Memo    string           `json:"memo"`
}

func (r fixedRequest) fixedCost() (cashbook.FixedCost, error) {
	m, err := date.ParseMonth(r.Month)
	if err != nil {
		return cashbook.FixedCost{}, err
	}
	f := cashbook.NewFixedCost(m, r.Concept, amount(*r.Amount))
	f.Memo = r.Memo
	return f, nil
}

type labelRequest struct {
	Label string `json:"label" binding:"required"`
}

// amount is a weak amount, in the currency of the book.
func amount(d decimal.Decimal) cashbook.Money { return cashbook.M(d, "") }
