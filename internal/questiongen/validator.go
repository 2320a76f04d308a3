package questiongen

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Validator checks a generated item.
type Validator interface {
	Name() string
	Validate(item Item, in Input) *ValidationError
}

// ValidationError says why an item was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxQuestionLen = 500

// StructuralValidator checks question text and the answer index.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(item Item, _ Input) *ValidationError {
	text := strings.TrimSpace(item.Question)
	switch {
	case text == "":
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	case len(text) > maxQuestionLen:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question exceeds %d characters", maxQuestionLen)}
	case item.Answer < 0 || item.Answer >= len(item.Choices):
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("answer %d out of range for %d choices", item.Answer, len(item.Choices))}
	}
	return nil
}

// ChoiceValidator requires at least two distinct, non-empty choices.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(item Item, _ Input) *ValidationError {
	if len(item.Choices) < 2 {
		return &ValidationError{Validator: v.Name(), Message: "fewer than two choices"}
	}
	seen := make(map[string]bool, len(item.Choices))
	for _, c := range item.Choices {
		key := foldText(c)
		if key == "" {
			return &ValidationError{Validator: v.Name(), Message: "empty choice"}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate choice %q", c)}
		}
		seen[key] = true
	}
	return nil
}

var folder = cases.Fold()

// foldText is the comparison key for question and choice text.
func foldText(s string) string {
	return folder.String(strings.Join(strings.Fields(s), " "))
}
