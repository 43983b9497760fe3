// Package agent runs a chat with a Gemini model about the cash book.
//
// The manager talks to a facilitator, which asks questions to experts. Each
// expert answers using a Library of functions reading the book.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const prompt = "assist> "

// Agent is a chat session with the venue manager.
type Agent struct {
	out         io.Writer
	in          *bufio.Scanner
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, as plain markdown by default.
	Print func(w io.Writer, markdown string)
}

// New returns an Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		out:         w,
		in:          bufio.NewScanner(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

func (a *Agent) start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.start(ctx, client)
}

// next returns the next question, taken from queued first. ok is false at
// the end of the input.
func (a *Agent) next(queued *[]string) (question string, ok bool) {
	for len(*queued) > 0 {
		q := strings.TrimSpace((*queued)[0])
		*queued = (*queued)[1:]
		if q != "" {
			fmt.Fprintln(a.out, q)
			return q, true
		}
	}
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// Run asks the questions in queued, then the ones read from the input,
// until "bye" or the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, queued ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "Welcome to the cashbook assistant. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.out, prompt)
		q, ok := a.next(&queued)
		if !ok {
			fmt.Fprintln(a.out)
			return a.in.Err()
		}
		switch q {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, &genai.Part{Text: q})
		if err != nil {
			return err
		}
		a.Print(a.out, text(answer))
	}
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
