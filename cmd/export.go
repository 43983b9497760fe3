package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/importer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
	year   int
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the summary to an Excel workbook" }
func (*exportCmd) Usage() string {
	return `cbk export [-o <file.xlsx>] [-y <year>]

  Writes the annual summary to an Excel workbook: a Summary sheet with one
  line per month, and one sheet per month with its closings.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "cashbook.xlsx", "Workbook to write")
	f.IntVar(&c.year, "y", 0, "Restrict the export to a calendar year")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	var summary cashbook.AnnualSummary
	if c.year != 0 {
		summary = s.book.YearSummary(c.year)
	} else {
		summary = s.book.AnnualSummary()
	}

	out, err := os.Create(c.output)
	if err != nil {
		return status(err)
	}
	if err := importer.ExportXLSX(out, summary); err != nil {
		out.Close()
		return status(fmt.Errorf("error writing %q: %w", c.output, err))
	}
	if err := out.Close(); err != nil {
		return status(err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d months to %s.\n", len(summary.Months), c.output)
	return subcommands.ExitSuccess
}
