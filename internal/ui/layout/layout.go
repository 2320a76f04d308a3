package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowtest/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one footer entry, e.g. {"Esc", "Quit"}.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small.\n\nResize to at least %d x %d\n(current %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the app name on the left, the screen title in the
// middle and right (usually the test name) on the right.
func RenderHeader(title, right string, width int) string {
	l := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  knowtest")
	c := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	r := lipgloss.NewStyle().Foreground(theme.Accent).Render(right)

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(c))/2-lipgloss.Width(l), 1)
	rightGap := max(inner-lipgloss.Width(l)-leftGap-lipgloss.Width(c)-lipgloss.Width(r), 1)

	return box(width).Render(l + strings.Repeat(" ", leftGap) + c + strings.Repeat(" ", rightGap) + r)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return box(width).Render("  " + strings.Join(parts, "   "))
}

func box(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame stacks header, content and footer, sizing the content to
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return header + "\n" + body + "\n" + footer
}

// ContentHeight is what RenderFrame leaves for content.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
