package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	year   int
	json   bool
	filter string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the summary of every month and the totals" }
func (*summaryCmd) Usage() string {
	return `cbk summary [-y <year>] [-json] [-q <jsonpath>]

  Displays one line per month having records, with its sales, costs, ratios
  and alerts, and the totals of all of them.

Usage Examples:
# The profit of 2024.
$ cbk summary -y 2024 -q '$.totals.profit'

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Restrict the summary to a calendar year")
	f.BoolVar(&c.json, "json", false, "Print the summary as JSON")
	f.StringVar(&c.filter, "q", "", "Print the result of a JSONPath query on the JSON summary")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	title := "Annual Summary"
	var summary cashbook.AnnualSummary
	if c.year != 0 {
		title = fmt.Sprintf("Summary of %d", c.year)
		summary = s.book.YearSummary(c.year)
	} else {
		summary = s.book.AnnualSummary()
	}

	if c.json || c.filter != "" {
		out, err := query(summary, c.filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		fmt.Println(out)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.AnnualMarkdown(title, summary))
	return subcommands.ExitSuccess
}
