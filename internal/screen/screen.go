package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/ui/layout"
)

// Screen is one page of the terminal UI. The app frame draws the header
// and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
