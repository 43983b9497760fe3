package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

type closeCmd struct {
	date      string
	sales     amountFlag
	card      amountFlag
	counted   amountFlag
	personnel amountFlag
	stock     amountFlag
	other     amountFlag
	memo      string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "record the cash closing of a day" }
func (*closeCmd) Usage() string {
	return `cbk close [-d <date>] -sales <amount> -card <amount> -counted <amount> -personnel <amount> [-stock <amount>] [-other <amount>] [-memo <text>]

  Records the register closing of a day and prints its reconciliation: the
  cash expected in the drawer and the difference with the counted cash.
  There is at most one closing per day.

Usage Examples:
$ cbk close -d 2024-03-01 -sales 1000 -card 400 -counted 590 -personnel 120

`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Day of the closing (YYYY-MM-DD)")
	f.Var(&c.sales, "sales", "Total sales of the Z report")
	f.Var(&c.card, "card", "Part of the sales paid by card")
	f.Var(&c.counted, "counted", "Cash counted in the drawer")
	f.Var(&c.personnel, "personnel", "Personnel cost of the day")
	f.Var(&c.stock, "stock", "Stock paid from the drawer")
	f.Var(&c.other, "other", "Other expenses of the day")
	f.StringVar(&c.memo, "memo", "", "An optional note")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if names := missing(map[string]*amountFlag{
		"sales": &c.sales, "card": &c.card, "counted": &c.counted, "personnel": &c.personnel,
	}); len(names) > 0 {
		fmt.Fprintf(os.Stderr, "Error: missing %s\n", strings.Join(names, ", "))
		f.Usage()
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	closing := cashbook.NewDailyClosing(day, c.sales.Money(), c.card.Money(), c.counted.Money(), c.personnel.Money()).
		WithStock(c.stock.Money()).
		WithOther(c.other.Money()).
		WithMemo(c.memo)
	closing, err = s.book.AddDailyClosing(closing)
	if err != nil {
		return status(err)
	}
	if err := s.save(); err != nil {
		return status(err)
	}
	printMarkdown(renderer.ClosingMarkdown(closing))
	return subcommands.ExitSuccess
}
