package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"google.golang.org/genai"
)

func testBook(t *testing.T) *cashbook.Book {
	t.Helper()
	b, err := cashbook.NewBook()
	if err != nil {
		t.Fatal(err)
	}
	c := cashbook.NewDailyClosing(date.MustParse("2024-03-01"), cashbook.M(1000, ""), cashbook.M(400, ""), cashbook.M(570, ""), cashbook.M(100, ""))
	if _, err := b.AddDailyClosing(c); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(testBook(t)))

	testCases := []struct {
		name      string
		call      *genai.FunctionCall
		wantKey   string
		wantMatch string
	}{
		{
			name:      "months",
			call:      &genai.FunctionCall{ID: "1", Name: "Months"},
			wantKey:   "output",
			wantMatch: "2024-03",
		},
		{
			name:      "month summary",
			call:      &genai.FunctionCall{ID: "2", Name: "MonthSummary", Args: map[string]any{"month": "2024-03"}},
			wantKey:   "output",
			wantMatch: "cash-shortfall",
		},
		{
			name:      "bad month",
			call:      &genai.FunctionCall{ID: "3", Name: "MonthSummary", Args: map[string]any{"month": "March"}},
			wantKey:   "error",
			wantMatch: "YYYY-MM",
		},
		{
			name:      "annual summary of a year",
			call:      &genai.FunctionCall{ID: "4", Name: "AnnualSummary", Args: map[string]any{"year": "2024"}},
			wantKey:   "output",
			wantMatch: "Summary of 2024",
		},
		{
			name:      "unknown function",
			call:      &genai.FunctionCall{ID: "5", Name: "Refund"},
			wantKey:   "error",
			wantMatch: "unknown function Refund",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib.Dispatch(context.Background(), tc.call)
			if resp.ID != tc.call.ID {
				t.Errorf("response ID = %q, want %q", resp.ID, tc.call.ID)
			}
			got, ok := resp.Response[tc.wantKey].(string)
			if !ok {
				t.Fatalf("response = %v, want a %q string", resp.Response, tc.wantKey)
			}
			if !strings.Contains(got, tc.wantMatch) {
				t.Errorf("response[%q] = %q, want it to contain %q", tc.wantKey, got, tc.wantMatch)
			}
		})
	}
}

func TestExpert_Declaration(t *testing.T) {
	auditor := NewAuditor(DefaultModel, testBook(t))
	d := auditor.Declaration()
	if d.Name != "Auditor" || len(d.Parameters.Required) != 1 {
		t.Errorf("Declaration() = %+v", d)
	}

	f := newFacilitator(DefaultModel, auditor)
	decls := f.Config.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "Auditor" {
		t.Errorf("facilitator tools = %v, want the auditor", decls)
	}
}

func TestText(t *testing.T) {
	c := &genai.Content{Parts: []*genai.Part{{Text: "Cash is "}, {Text: "fine."}}}
	if got := text(c); got != "Cash is fine." {
		t.Errorf("text() = %q", got)
	}
}

func TestLibrary_Declarations(t *testing.T) {
	lib := NewLibrary(Tools(testBook(t)))
	var names []string
	for _, d := range lib.Declarations() {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, " "); got != "AnnualSummary MonthSummary Months" {
		t.Errorf("Declarations() = %q, want sorted names", got)
	}
}

func TestAgent_Next(t *testing.T) {
	var out strings.Builder
	a := New(&out, strings.NewReader("how much cash?\n"), DefaultModel)
	queued := []string{" ", "any shortfall in March? "}

	var got []string
	for {
		q, ok := a.next(&queued)
		if !ok {
			break
		}
		got = append(got, q)
	}
	if strings.Join(got, "|") != "any shortfall in March?|how much cash?" {
		t.Errorf("questions = %q", got)
	}
	// queued questions are echoed after the prompt.
	if out.String() != "any shortfall in March?\n" {
		t.Errorf("output = %q", out.String())
	}
}
