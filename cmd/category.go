package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/renderer"
	"github.com/google/subcommands"
)

type categoryCmd struct {
	kind string
}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "list or add stock categories and fixed cost concepts" }
func (*categoryCmd) Usage() string {
	return `cbk category [-kind stock|fixed] [<label>...]

  Without labels, lists the known labels of the kind. Otherwise adds them,
  labels already known are left as is.
`
}

func (c *categoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "stock", "Kind of label: stock or fixed")
}

func (c *categoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := cashbook.ParseCategoryKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	if f.NArg() == 0 {
		printMarkdown(renderer.CategoriesMarkdown(kind, s.book.Categories(kind)))
		return subcommands.ExitSuccess
	}

	added := 0
	for _, label := range f.Args() {
		err := s.book.AddCategory(kind, label)
		switch {
		case errors.Is(err, cashbook.ErrAlreadyExists):
			fmt.Fprintf(os.Stderr, "%q is already a %s category.\n", label, kind)
		case err != nil:
			return status(err)
		default:
			added++
		}
	}
	if added > 0 {
		if err := s.save(); err != nil {
			return status(err)
		}
	}
	printMarkdown(renderer.CategoriesMarkdown(kind, s.book.Categories(kind)))
	return subcommands.ExitSuccess
}
