package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/knowtest/internal/ui/theme"
)

// Entries after the answer options.
const (
	DontKnowLabel  = "I don't know"
	SkipTopicLabel = "Next topic"
)

// ChoiceList is the option selector of the quiz screen. Rows 0..n-1 are
// the answer options, row n is "I don't know" and row n+1 skips the
// topic.
type ChoiceList struct {
	Options  []string
	Selected int

	// After Reveal, Chosen and Correct colour the rows. -1 means none.
	revealed bool
	chosen   int
	correct  int
}

func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, chosen: -1, correct: -1}
}

// Rows is len(Options)+2.
func (c ChoiceList) Rows() int {
	return len(c.Options) + 2
}

func (c ChoiceList) DontKnowRow() int  { return len(c.Options) }
func (c ChoiceList) SkipTopicRow() int { return len(c.Options) + 1 }

// Move shifts the cursor by delta, clamped to the list.
func (c ChoiceList) Move(delta int) ChoiceList {
	c.Selected = min(max(c.Selected+delta, 0), c.Rows()-1)
	return c
}

// Reveal marks the picked and the right option for feedback display.
func (c ChoiceList) Reveal(chosen, correct int) ChoiceList {
	c.revealed = true
	c.chosen = chosen
	c.correct = correct
	return c
}

func (c ChoiceList) label(i int) string {
	switch {
	case i < len(c.Options):
		return c.Options[i]
	case i == c.DontKnowRow():
		return DontKnowLabel
	default:
		return SkipTopicLabel
	}
}

func (c ChoiceList) View() string {
	var b strings.Builder
	for i := range c.Rows() {
		prefix := "  "
		if !c.revealed && i == c.Selected {
			prefix = "▸ "
		}
		if i == c.DontKnowRow() {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, c.label(i))

		style := theme.Unselected
		switch {
		case c.revealed && i == c.correct:
			style = theme.Correct
		case c.revealed && i == c.chosen:
			style = theme.Incorrect
		case c.revealed:
			style = theme.Hint
		case i == c.Selected:
			style = theme.Selected
		case i >= c.DontKnowRow():
			style = theme.Hint
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
