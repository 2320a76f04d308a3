package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/knowtest/internal/router"
	"github.com/abhisek/knowtest/internal/screen"
	"github.com/abhisek/knowtest/internal/ui/layout"
	"github.com/abhisek/knowtest/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	detailsAt    = 500 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// Info is what the intro shows about the session about to run.
type Info struct {
	TestName string
	Topics   int
	Resumed  bool
}

type tickMsg time.Time

// WelcomeScreen introduces a test and hands over to the quiz on any key.
type WelcomeScreen struct {
	info         Info
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next() on a key press.
func New(info Info, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{info: info, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "any key", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if w.elapsed >= detailsAt {
		verb := "Starting"
		if w.info.Resumed {
			verb = "Resuming"
		}
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render(fmt.Sprintf("%s test %s", verb, w.info.TestName)),
			theme.Hint.Render(fmt.Sprintf("%d topics, five levels each", w.info.Topics)),
			"",
			theme.Body.Render("Pick an answer with the arrows or its number."),
			theme.Body.Render("Three right in a row passes a level, three wrong fails it."),
			theme.Body.Render("Progress is saved after every answer."),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to begin"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
