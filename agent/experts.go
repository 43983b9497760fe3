package agent

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/etnz/cashbook/docs"
	"github.com/etnz/cashbook/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// newFacilitator returns the expert talking to the manager.
func newFacilitator(model string, experts ...*Expert) *Expert {
	lib := NewLibrary(experts)
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: lib.Declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation with the manager of a bar and of
			solving the manager's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The manager mostly wants to know whether the cash drawer is right, whether the stock
			cost is reasonable compared to sales, and whether the venue makes money.
			Answer with figures taken from the experts, never invent them.
		`}}},
		},
		Library: lib,
	}
}

// NewAuditor creates the expert reading the book.
func NewAuditor(model string, book *cashbook.Book) *Expert {
	lib := NewLibrary(Tools(book))
	glossary, err := docs.GetTopic("metrics")
	if err != nil {
		glossary = ""
	}
	return &Expert{
		Name: "Auditor",
		Description: `This is the Auditor. It reads the venue's cash book: daily closings, stock purchases
		and fixed costs, and the monthly and annual summaries computed from them.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: lib.Declarations()},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the auditor of a bar's cash book.
				Use the available tools to get the months having records and their summaries.
				Point out cash shortfalls, days where card payments exceed the reported sales,
				and stock ratios outside the usual range. Quote the dates and amounts.

				The metrics are defined as follow:
				` + glossary}}},
		},
		Library: lib,
	}
}

// Func is a Function made of a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// Tools returns the functions reading book.
func Tools(book *cashbook.Book) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Months",
				Description: "Months lists the months (YYYY-MM) having at least one record, oldest first.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown-formatted list of months.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "Months", renderer.MonthKeysMarkdown(book.MonthKeys()))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "MonthSummary",
				Description: "MonthSummary returns the totals, alerts and daily closings of a month.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {
							Type:        genai.TypeString,
							Description: "The month in YYYY-MM format. The current month is the default.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown-formatted summary of the month.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				m, err := parseMonth(args)
				if err != nil {
					return failed(id, "MonthSummary", err)
				}
				return output(id, "MonthSummary", renderer.MonthMarkdown(book.MonthlySummary(m), renderer.RenderOptions{}))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "AnnualSummary",
				Description: "AnnualSummary returns one line per month with records and the totals, for a year or for all years.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"year": {
							Type:        genai.TypeString,
							Description: "The calendar year, like 2024. All years when missing.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown-formatted table of the months.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				year, ok := args["year"].(string)
				if !ok || year == "" {
					return output(id, "AnnualSummary", renderer.AnnualMarkdown("Annual Summary", book.AnnualSummary()))
				}
				y, err := strconv.Atoi(year)
				if err != nil {
					return failed(id, "AnnualSummary", fmt.Errorf("argument 'year' must be a number, got %q", year))
				}
				return output(id, "AnnualSummary", renderer.AnnualMarkdown(fmt.Sprintf("Summary of %d", y), book.YearSummary(y)))
			},
		},
	}
}

func parseMonth(args map[string]any) (date.Month, error) {
	imonth, ok := args["month"]
	if !ok {
		return date.ThisMonth(), nil
	}
	smonth, ok := imonth.(string)
	if !ok {
		return date.Month{}, fmt.Errorf("argument 'month' is not a string as expected but %T", imonth)
	}
	m, err := date.ParseMonth(smonth)
	if err != nil {
		return date.Month{}, errors.New("argument 'month' must be in YYYY-MM format, got " + strconv.Quote(smonth))
	}
	return m, nil
}
