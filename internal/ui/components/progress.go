package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowtest/internal/ui/theme"
)

// ProgressBar renders "Label  ████░░░░  40%".
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	percent := fmt.Sprintf("  %3d%%", int(p.Percent*100))

	bar := max(p.Width-lipgloss.Width(label)-len(percent), 4)
	filled := min(max(int(float64(bar)*p.Percent), 0), bar)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled)) +
		theme.Hint.Render(percent)
}
