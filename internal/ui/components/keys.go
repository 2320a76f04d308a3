package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/knowtest/internal/ui/layout"
)

// QuizKeys are the bindings of the quiz screen.
type QuizKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
	Yes    key.Binding
	No     key.Binding
}

func DefaultQuizKeys() QuizKeys {
	return QuizKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Down")),
		Select: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Answer")),
		Quit:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "Save & quit")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Save & quit")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep going")),
	}
}

// Hints turns bindings into footer hints.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}
