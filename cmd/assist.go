package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cashbook/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the book" }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `cbk assist [<question>]

  Starts an interactive session with the AI assistant. It reads the monthly
  and annual summaries of the book to answer. Requires GEMINI_API_KEY.
`
}

// SetFlags sets the flags for the command.
func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	s, err := openSession()
	if err != nil {
		return status(err)
	}
	defer s.close()

	var cc *genai.ClientConfig
	if s.cfg.AI.GeminiKey != "" {
		cc = &genai.ClientConfig{APIKey: s.cfg.AI.GeminiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	model := s.cfg.AI.Model
	auditor := agent.NewAuditor(model, s.book)
	auditor.Log = s.log.Named("auditor")
	a := agent.New(os.Stdout, os.Stdin, model, auditor)
	a.Print = func(w io.Writer, md string) { fmt.Fprintln(w, renderMarkdown(md)) }

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
