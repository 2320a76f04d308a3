package quiz

import (
	"context"
	"errors"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/router"
	"github.com/abhisek/knowtest/internal/screen"
	"github.com/abhisek/knowtest/internal/screens/results"
	sess "github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/ui/components"
	"github.com/abhisek/knowtest/internal/ui/layout"
)

// QuizScreen asks the engine's questions one at a time. Engine calls run
// inside commands and the screen ignores input until each one returns.
type QuizScreen struct {
	ctx    context.Context
	engine *sess.Engine
	keys   components.QuizKeys

	prompt *sess.Prompt
	list   components.ChoiceList

	// feedback for the last answered question, nil while asking
	turn *sess.Turn

	confirming bool
	busy       bool
	warning    string
	err        error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

func New(ctx context.Context, engine *sess.Engine) *QuizScreen {
	return &QuizScreen{ctx: ctx, engine: engine, keys: components.DefaultQuizKeys()}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.busy = true
	return s.loadPrompt()
}

func (s *QuizScreen) Title() string {
	if s.prompt != nil {
		return s.prompt.Topic.Title
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.err != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	case s.confirming:
		return components.Hints(s.keys.Yes, s.keys.No)
	case s.turn != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return components.Hints(s.keys.Up, s.keys.Down, s.keys.Select, s.keys.Quit)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case promptMsg:
		return s.handlePrompt(msg)
	case turnMsg:
		return s.handleTurn(msg)
	case quitMsg:
		s.busy = false
		if msg.err != nil && !errors.Is(msg.err, sess.ErrQuit) {
			s.err = msg.err
			return s, nil
		}
		return s, tea.Quit
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handlePrompt(msg promptMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if errors.Is(msg.err, sess.ErrSessionComplete) {
		return s, s.showResults()
	}
	if msg.err != nil {
		s.err = msg.err
		return s, nil
	}
	p := msg.prompt
	s.prompt = &p
	s.list = components.NewChoiceList(p.Options)
	s.turn = nil
	return s, nil
}

func (s *QuizScreen) handleTurn(msg turnMsg) (screen.Screen, tea.Cmd) {
	s.busy = false

	var invalid *sess.InvalidInputError
	var persist *sess.PersistenceError
	switch {
	case errors.As(msg.err, &invalid):
		s.warning = invalid.Error()
		return s, nil
	case errors.As(msg.err, &persist):
		// The state has advanced; keep going and show the failure.
		s.warning = persist.Error()
	case msg.err != nil:
		s.err = msg.err
		return s, nil
	default:
		s.warning = ""
	}

	turn := msg.turn
	if turn.Outcome == sess.OutcomeSkipped {
		if turn.Complete {
			return s, s.showResults()
		}
		s.busy = true
		return s, s.loadPrompt()
	}

	chosen := turn.Choice
	if turn.Outcome == sess.OutcomeDontKnow {
		chosen = s.list.DontKnowRow()
	}
	s.list = s.list.Reveal(chosen, turn.CorrectChoice)
	s.turn = &turn
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.err != nil {
		return s, tea.Quit
	}
	if s.busy {
		return s, nil
	}

	if s.confirming {
		switch {
		case key.Matches(msg, s.keys.Yes):
			s.confirming = false
			s.busy = true
			return s, s.apply(sess.Quit{})
		case key.Matches(msg, s.keys.No):
			s.confirming = false
		}
		return s, nil
	}

	if s.turn != nil {
		if s.turn.Complete {
			return s, s.showResults()
		}
		s.busy = true
		return s, s.loadPrompt()
	}

	if s.prompt == nil {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Quit):
		s.confirming = true
		return s, nil
	case key.Matches(msg, s.keys.Up):
		s.list = s.list.Move(-1)
		return s, nil
	case key.Matches(msg, s.keys.Down):
		s.list = s.list.Move(1)
		return s, nil
	case key.Matches(msg, s.keys.Select):
		return s.choose(s.list.Selected + 1)
	}

	if n, err := strconv.Atoi(msg.String()); err == nil {
		return s.choose(n)
	}
	return s, nil
}

// choose applies the action for a 1-based list row.
func (s *QuizScreen) choose(n int) (screen.Screen, tea.Cmd) {
	action, err := sess.ActionForInput(n, len(s.prompt.Options))
	if err != nil {
		s.warning = err.Error()
		return s, nil
	}
	s.busy = true
	return s, s.apply(action)
}

func (s *QuizScreen) loadPrompt() tea.Cmd {
	return func() tea.Msg {
		p, err := s.engine.NextPrompt()
		return promptMsg{prompt: p, err: err}
	}
}

func (s *QuizScreen) apply(action sess.Action) tea.Cmd {
	return func() tea.Msg {
		turn, err := s.engine.Apply(s.ctx, action)
		if _, ok := action.(sess.Quit); ok {
			return quitMsg{err: err}
		}
		return turnMsg{turn: turn, err: err}
	}
}

func (s *QuizScreen) showResults() tea.Cmd {
	report := s.engine.Report()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(report)}
	}
}
