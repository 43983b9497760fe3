package cmd

import (
	"fmt"
	"slices"

	"github.com/etnz/cashbook"
	"github.com/shopspring/decimal"
)

// amountFlag is a flag.Value holding a decimal amount in the book currency.
type amountFlag struct {
	value decimal.Decimal
	set   bool
}

func (a *amountFlag) String() string {
	if a == nil || !a.set {
		return ""
	}
	return a.value.String()
}

func (a *amountFlag) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	a.value, a.set = d, true
	return nil
}

// Money returns the amount, zero when the flag was not set.
func (a *amountFlag) Money() cashbook.Money { return cashbook.M(a.value, "") }

// missing returns the names of the flags that were not set.
func missing(flags map[string]*amountFlag) []string {
	var names []string
	for name, f := range flags {
		if !f.set {
			names = append(names, "-"+name)
		}
	}
	slices.Sort(names)
	return names
}
