package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxRounds bounds the tool calls an expert can chain before answering.
const maxRounds = 8

// Expert is a chat with a model that can call the functions of its Library.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library
	Log         *zap.Logger
	chat        *genai.Chat
}

func (e *Expert) start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("starting %s: %w", e.Name, err)
	}
	e.chat = chat
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	return nil
}

// Ask sends parts to the expert and runs the function calls it requests
// until it answers with text.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if e.chat == nil {
		return nil, errors.New("expert " + e.Name + " is not started")
	}
	for range maxRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return nil, fmt.Errorf("no response from %s", e.Name)
		}
		content := resp.Candidates[0].Content

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("%s cannot call functions", e.Name)
		}
		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			e.Log.Debug("function call", zap.String("expert", e.Name), zap.String("function", call.Name), zap.Any("args", call.Args))
			parts = append(parts, &genai.Part{FunctionResponse: e.Library.Dispatch(ctx, call)})
		}
	}
	return nil, fmt.Errorf("%s made more than %d rounds of function calls", e.Name, maxRounds)
}

// Declaration declares the expert as a function taking a question.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString, Description: "The question to ask."},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The answer, in markdown."},
	}
}

// Call asks the question found in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return failed(id, e.Name, fmt.Errorf("argument 'question' must be a string, got %T", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return failed(id, e.Name, err)
	}
	md := text(answer)
	e.Log.Debug("answered", zap.String("expert", e.Name), zap.String("question", question), zap.Int("length", len(md)))
	return output(id, e.Name, md)
}
