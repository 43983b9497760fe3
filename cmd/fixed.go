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

type fixedCmd struct {
	month   string
	concept string
	amount  amountFlag
	memo    string
}

func (*fixedCmd) Name() string     { return "fixed" }
func (*fixedCmd) Synopsis() string { return "record the fixed cost of a month" }
func (*fixedCmd) Usage() string {
	return `cbk fixed [-m <month>] -c <concept> -a <amount> [-memo <text>]

  Records a fixed cost (rent, utilities...) for a month. A concept is paid
  at most once per month.
`
}

func (c *fixedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", date.ThisMonth().String(), "Month of the cost (YYYY-MM)")
	f.StringVar(&c.concept, "c", "", "Fixed cost concept")
	f.Var(&c.amount, "a", "Amount of the cost")
	f.StringVar(&c.memo, "memo", "", "An optional note")
}

func (c *fixedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.concept == "" || !c.amount.set {
		f.Usage()
		return subcommands.ExitUsageError
	}
	m, err := date.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	cost := cashbook.NewFixedCost(m, c.concept, c.amount.Money())
	cost.Memo = c.memo
	cost, err = s.book.AddFixedCost(cost)
	if err != nil {
		return status(err)
	}
	if err := s.save(); err != nil {
		return status(err)
	}
	printMarkdown(renderer.Entry(cost))
	return subcommands.ExitSuccess
}
