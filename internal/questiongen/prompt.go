package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/knowtest/internal/catalog"
)

const systemPrompt = `You write multiple-choice questions for an adaptive knowledge test.

Rules:
- Every question is about the given topic and pitched at the given level.
- Levels run Beginner, Intermediate, Advanced, Expert, Master. Beginner checks vocabulary and everyday use. Master checks internals, edge cases and tradeoffs.
- Each question is self-contained plain text. No markdown, no code fences.
- Give 4 choices with exactly one correct. Distractors should be plausible mistakes.
- "answer" is the zero-based index of the correct choice. Vary its position across questions.
- Do not repeat or rephrase any question from the "already asked" list.`

var levelGuides = map[catalog.Level]string{
	catalog.Beginner:     "terminology and first steps",
	catalog.Intermediate: "common tasks and their options",
	catalog.Advanced:     "less common features and troubleshooting",
	catalog.Expert:       "internals and behaviour under unusual conditions",
	catalog.Master:       "design tradeoffs and subtle edge cases",
}

func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Level: %d (%s): %s\n", in.Level, in.Level, levelGuides[in.Level])
	fmt.Fprintf(&b, "Number of questions: %d\n", in.Count)
	b.WriteString("\nAlready asked:\n")
	b.WriteString(priorList(in.Prior, cfg.MaxPriorQuestions))
	return b.String()
}

// priorList numbers the most recent max questions, or "None".
func priorList(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
