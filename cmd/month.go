package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/cashbook/date"
	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

type monthCmd struct {
	month    string
	skipDays bool
	entries  bool
	json     bool
	filter   string
}

func (*monthCmd) Name() string     { return "month" }
func (*monthCmd) Synopsis() string { return "display the summary of a month" }
func (*monthCmd) Usage() string {
	return `cbk month [-m <month>] [-skip-days] [-entries] [-json] [-q <jsonpath>]

  Displays the totals of a month, its alerts and one line per closing with
  its share of the fixed costs and its profit. -entries appends every record
  of the month in the order it was entered.
`
}

func (c *monthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", date.ThisMonth().String(), "Month to display (YYYY-MM)")
	f.BoolVar(&c.skipDays, "skip-days", false, "Do not display the table of the days")
	f.BoolVar(&c.entries, "entries", false, "Also list the records of the month")
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON")
	f.StringVar(&c.filter, "q", "", "Print the result of a JSONPath query on the JSON summary")
}

func (c *monthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	summary := s.book.MonthlySummary(m)
	if c.json || c.filter != "" {
		out, err := query(summary, c.filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		fmt.Println(out)
		return subcommands.ExitSuccess
	}

	md := renderer.MonthMarkdown(summary, renderer.RenderOptions{SkipDays: c.skipDays})
	if c.entries {
		md += "\n" + renderer.EntriesMarkdown("Records", slices.Collect(s.book.Entries(m)))
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
