package questiongen

import "github.com/abhisek/knowtest/internal/llm"

// BatchSchema is the response shape for one level's questions.
var BatchSchema = &llm.Schema{
	Name:        "topic-questions",
	Description: "A batch of multiple-choice questions for one topic level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the test taker",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"description": "Answer options, exactly one correct",
						},
						"answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct choice",
						},
					},
					"required":             []any{"question", "choices", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
