package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/screen"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/ui/layout"
	"github.com/abhisek/knowtest/internal/ui/theme"
)

// ResultsScreen shows the per-topic report at the end of a test.
type ResultsScreen struct {
	report *session.Report
	offset int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func New(report *session.Report) *ResultsScreen {
	return &ResultsScreen{report: report}
}

func (s *ResultsScreen) Init() tea.Cmd { return nil }

func (s *ResultsScreen) Title() string { return "Results" }

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Exit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	lines := strings.Split(s.render(width), "\n")
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ResultsScreen) render(width int) string {
	r := s.report
	var b strings.Builder

	status := "Test paused"
	if r.Complete {
		status = "Test complete"
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%s: %s", status, r.TestName)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d topics with a passed level", r.PassedTopics(), len(r.Topics))))
	b.WriteString("\n\n")

	for _, t := range r.Topics {
		b.WriteString("  " + theme.Title.Render(t.Title))
		if !t.Started {
			b.WriteString("  " + theme.Hint.Render("not started") + "\n\n")
			continue
		}
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("highest passed: %s, above 50%%: %s",
			levelName(t.Highest), levelName(t.HighestByRatio))))
		b.WriteString("\n")
		for _, l := range t.Levels {
			b.WriteString("    " + levelLine(l) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func levelLine(l session.LevelReport) string {
	name := fmt.Sprintf("%-13s", l.Level)
	if !l.Started {
		return theme.Hint.Render(name + "not started")
	}
	score := fmt.Sprintf("%d/%d (%3.0f%%)", l.Score.Correct, l.Score.Answered, l.Score.Ratio()*100)
	mark := "  "
	style := theme.Body
	if l.Passed {
		mark = "✓ "
		style = theme.Correct
	}
	return style.Render(mark + name + score)
}

func levelName(l catalog.Level) string {
	if l == 0 {
		return "none"
	}
	return l.String()
}
