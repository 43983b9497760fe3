package cmd

import (
	"context"
	"flag"

	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

type monthsCmd struct{}

func (*monthsCmd) Name() string     { return "months" }
func (*monthsCmd) Synopsis() string { return "list the months having records" }
func (*monthsCmd) Usage() string {
	return `cbk months

  Lists the months having at least one closing, purchase or fixed cost,
  oldest first.
`
}

func (*monthsCmd) SetFlags(f *flag.FlagSet) {}

func (*monthsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	printMarkdown(renderer.MonthKeysMarkdown(s.book.MonthKeys()))
	return subcommands.ExitSuccess
}
