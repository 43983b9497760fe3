package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cashbook/importer"
	"github.com/google/subcommands"
)

type importCmd struct {
	sheet string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import stock purchases from a CSV or Excel file" }
func (*importCmd) Usage() string {
	return `cbk import [-sheet <name>] <file.csv|file.xlsx>

  Imports stock purchases. The file has a header with the columns date,
  category, amount and optionally memo. Nothing is recorded if a line is
  invalid. Lines identical to a recorded purchase are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sheet, "sheet", "", "Sheet of an Excel workbook. Defaults to the first one.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	batch, err := readPurchases(path, c.sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	res, err := batch.Import(s.book)
	if err != nil {
		return status(fmt.Errorf("%s: %w", path, err))
	}
	if res.Inserted > 0 {
		if err := s.save(); err != nil {
			return status(err)
		}
	}
	fmt.Printf("Imported %s: %s.\n", path, res)
	return subcommands.ExitSuccess
}

// readPurchases parses a purchase file according to its extension.
func readPurchases(path, sheet string) (importer.Batch, error) {
	file, err := os.Open(path)
	if err != nil {
		return importer.Batch{}, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return importer.ReadXLSX(file, sheet)
	}
	return importer.ReadCSV(file)
}
