package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/ui/components"
	"github.com/abhisek/knowtest/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return center(width, height, theme.Incorrect.Render("Error: "+s.err.Error())+"\n\n"+
			theme.Hint.Render("Progress up to the last answer is saved."))
	case s.confirming:
		return center(width, height, theme.Card.Render(
			theme.Title.Render("Save and quit?")+"\n\n"+
				theme.Body.Render("Resume later with the same test name.")))
	case s.prompt == nil:
		return center(width, height, theme.Hint.Render("Loading..."))
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	p := s.prompt
	inner := max(width-4, 20)
	var b strings.Builder

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", p.Topic.Title, p.Level))
	right := theme.Hint.Render(fmt.Sprintf("Q %d/%d", p.Position, p.LevelSize))
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	b.WriteString(left + strings.Repeat(" ", gap) + right + "\n")

	bars := inner/2 - 2
	b.WriteString("  " + components.NewProgressBar("Topic", p.Progress.Topic, bars).View())
	b.WriteString("  " + components.NewProgressBar("Level", p.Progress.Level, bars).View() + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(inner).PaddingLeft(2).Foreground(theme.Text).Bold(true).
		Render(p.Question.Text))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.list.View()))

	if s.turn != nil {
		b.WriteString("\n  " + feedback(*s.turn, p.Options))
	}
	if s.warning != "" {
		b.WriteString("\n  " + theme.Neutral.Render(s.warning))
	}
	return b.String()
}

// feedback describes an answered turn in one or two lines.
func feedback(t sess.Turn, options []string) string {
	var line string
	switch t.Outcome {
	case sess.OutcomeCorrect:
		line = theme.Correct.Render("Correct!")
	case sess.OutcomeIncorrect, sess.OutcomeDontKnow:
		answer := ""
		if t.CorrectChoice >= 0 && t.CorrectChoice < len(options) {
			answer = options[t.CorrectChoice]
		}
		line = theme.Incorrect.Render("Not quite.") + theme.Body.Render(" The answer is: "+answer)
	}

	switch t.Verdict {
	case sess.VerdictPassed:
		line += "\n  " + theme.Correct.Render(fmt.Sprintf("%s level passed.", t.Level))
	case sess.VerdictFailed:
		line += "\n  " + theme.Incorrect.Render(fmt.Sprintf("%s level failed.", t.Level))
	case sess.VerdictEndedUnmarked:
		line += "\n  " + theme.Neutral.Render(fmt.Sprintf("No questions left at %s.", t.Level))
	}
	if t.Complete {
		line += "\n  " + theme.Title.Render("That was the last question.")
	} else if t.TopicChanged {
		line += "\n  " + theme.Neutral.Render("Moving on to the next topic.")
	}
	return line
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
