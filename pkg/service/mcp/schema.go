package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Input contracts are declared explicitly rather than derived from the
// parameter structs, so enum and range constraints are enforced by the SDK
// before a handler runs. A schema violation fails only that tool call.

func searchInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Free-text query to search for",
				MinLength:   intptr(1),
			},
		},
		Required: []string{"query"},
	}
}

func fetchInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"reference": {
				Type:        "string",
				Description: "Reference token returned by the search tool",
				MinLength:   intptr(1),
			},
		},
		Required: []string{"reference"},
	}
}

func answerInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Question to ask the upstream QA API",
				MinLength:   intptr(1),
			},
			"style": {
				Type:        "string",
				Description: "Answer length hint",
				Enum:        []any{"short", "medium", "long"},
			},
			"min_words": {
				Type:        "integer",
				Description: "Minimum word count target for the answer",
				Minimum:     floatptr(1),
			},
		},
		Required: []string{"query"},
	}
}

func intptr(v int) *int {
	return &v
}

func floatptr(v float64) *float64 {
	return &v
}
