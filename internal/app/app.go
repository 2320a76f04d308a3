package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/router"
	"github.com/abhisek/knowtest/internal/screen"
	"github.com/abhisek/knowtest/internal/screens/quiz"
	"github.com/abhisek/knowtest/internal/screens/welcome"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/ui/layout"
)

// Options configures a TUI run.
type Options struct {
	Engine  *session.Engine
	Log     *logger.Logger
	Resumed bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	testName string
	width    int
	height   int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	engine := opts.Engine
	intro := welcome.New(welcome.Info{
		TestName: engine.State().TestName,
		Topics:   len(engine.State().Topics),
		Resumed:  opts.Resumed,
	}, func() screen.Screen {
		return quiz.New(ctx, engine)
	})
	return AppModel{
		router:   router.New(intro),
		testName: engine.State().TestName,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, m.testName, m.width)
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run drives the engine through the terminal UI until the user quits or
// the test completes. Unsaved progress is saved on the way out.
func Run(ctx context.Context, opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, runErr := p.Run()

	if err := saveOnExit(context.WithoutCancel(ctx), opts.Engine, log); err != nil {
		return err
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", runErr)
	}
	log.Info("terminal ui closed", "test", opts.Engine.State().TestName, "complete", opts.Engine.Complete())
	return nil
}

// saveOnExit flushes the engine. A quiz command may still be applying an
// answer when the program stops; the engine serializes the two.
func saveOnExit(ctx context.Context, engine *session.Engine, log *logger.Logger) error {
	if err := engine.Flush(ctx); err != nil {
		log.Error("save on exit failed", "error", err)
		return err
	}
	return nil
}
