package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// query evaluates a JSONPath expression on the JSON form of v. Strings are
// returned unquoted, anything else as indented JSON.
func query(v any, path string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", err
	}
	if path == "" {
		return indent(jobj)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	if s, ok := jval.(string); ok {
		return s, nil
	}
	return indent(jval)
}

func indent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
