package enrich

import "github.com/njytim-cyber/spelling-bee-sub001/internal/llm"

// DistractorSchema is the response shape for one batch of words.
var DistractorSchema = &llm.Schema{
	Name:        "word-distractors",
	Description: "Plausible misspellings for each word in a spelling list",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word": map[string]any{
							"type":        "string",
							"description": "The correctly spelled word, exactly as given",
						},
						"misspellings": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Misspellings a child might plausibly write, lowercase letters only",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A short child-friendly clue for the word that does not contain the word",
						},
					},
					"required":             []any{"word", "misspellings", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}
