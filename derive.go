package cashbook

// CashCheck is the reconciliation of a register closing.
type CashCheck struct {
	// Theoretical is the cash the drawer should contain: reported sales minus
	// card payments. It is negative when card payments exceed reported sales,
	// which is surfaced as an anomaly, not rejected.
	Theoretical Money
	// Discrepancy is counted cash minus theoretical cash. Negative means cash
	// is missing from the drawer.
	Discrepancy Money
}

// Reconcile computes the theoretical cash and the discrepancy of a closing.
func Reconcile(sales, card, counted Money) CashCheck {
	theoretical := sales.Sub(card)
	return CashCheck{
		Theoretical: theoretical,
		Discrepancy: counted.Sub(theoretical),
	}
}

// IsShort reports whether less cash was counted than expected.
func (c CashCheck) IsShort() bool { return c.Discrepancy.IsNegative() }
