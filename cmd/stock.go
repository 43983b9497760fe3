package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

type stockCmd struct {
	date     string
	category string
	amount   amountFlag
	memo     string
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "record a stock purchase" }
func (*stockCmd) Usage() string {
	return `cbk stock [-d <date>] -c <category> -a <amount> [-memo <text>]

  Records a stock purchase. The category must be known, see 'cbk category'.
  An identical purchase (same day, category and amount) is recorded anyway,
  with a warning.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Day of the purchase (YYYY-MM-DD)")
	f.StringVar(&c.category, "c", "", "Stock category")
	f.Var(&c.amount, "a", "Amount of the purchase")
	f.StringVar(&c.memo, "memo", "", "An optional note, the supplier for instance")
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" || !c.amount.set {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	p := cashbook.NewStockPurchase(day, c.category, c.amount.Money())
	p.Memo = c.memo
	p, dup, err := s.book.AddStockPurchase(p)
	if err != nil {
		return status(err)
	}
	if err := s.save(); err != nil {
		return status(err)
	}
	if dup {
		fmt.Fprintln(os.Stderr, "Warning: an identical purchase was already recorded, both are kept.")
	}
	printMarkdown(renderer.Entry(p))
	return subcommands.ExitSuccess
}
