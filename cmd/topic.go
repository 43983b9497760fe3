package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbook/docs"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

// topicCmd prints the embedded manual.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the manual" }
func (*topicCmd) Usage() string {
	return `cbk topic [<topic>...]

  Prints the given topics of the manual, or '*' for all of them.
  Without argument, prints the introduction and the list of topics.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		intro, err := docs.GetTopic("readme")
		if err != nil {
			return status(err)
		}
		printMarkdown(intro)
		return subcommands.ExitSuccess
	}
	text, err := docs.GetTopics(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printMarkdown(topicList())
		return subcommands.ExitUsageError
	}
	printMarkdown(text)
	return subcommands.ExitSuccess
}

// topicList renders the table of contents, for unknown topics.
func topicList() string {
	index, err := docs.Index()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Topics")
	items := make([]string, len(index))
	for i, t := range index {
		items[i] = md.Bold(t.Name) + ": " + t.Summary
	}
	doc.BulletList(items...)
	return doc.String()
}
