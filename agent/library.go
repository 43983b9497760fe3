package agent

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"google.golang.org/genai"
)

// Function is a tool the model can call.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// Library indexes functions by their declared name.
type Library map[string]Function

// NewLibrary returns the library of functions.
func NewLibrary[T Function](functions []T) Library {
	lib := make(Library, len(functions))
	for _, f := range functions {
		lib[f.Declaration().Name] = f
	}
	return lib
}

// Declarations returns the declarations of the library sorted by name.
func (l Library) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(l))
	for _, name := range slices.Sorted(maps.Keys(l)) {
		decls = append(decls, l[name].Declaration())
	}
	return decls
}

// Dispatch calls the function requested by call. Errors are reported to the
// model in the response.
func (l Library) Dispatch(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
	f, ok := l[call.Name]
	if !ok {
		return failed(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
	}
	return f.Call(ctx, call.ID, call.Args)
}

func output(id, name, md string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": md}}
}

func failed(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}
