package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/logger"
	"github.com/abhisek/knowtest/internal/router"
	"github.com/abhisek/knowtest/internal/screens/quiz"
	"github.com/abhisek/knowtest/internal/session"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	r := catalog.RawTopic{Topic: "Linux"}
	for lvl := 1; lvl <= 5; lvl++ {
		id := catalog.ID(fmt.Sprintf("l%d", lvl))
		r.Questions = append(r.Questions, catalog.RawQuestion{ID: id, Question: "Question " + string(id), Difficulty: lvl})
		r.Choices = append(r.Choices, catalog.RawChoiceSet{QuestionID: id, Choices: []string{"yes", "no"}, Answer: 0})
	}
	cat, err := catalog.New([]catalog.RawTopic{r}, catalog.Filter{})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return cat
}

func testModel(t *testing.T) AppModel {
	t.Helper()
	cat := testCatalog(t)
	engine := session.NewEngine(cat, session.NewState("calm-lion-07", cat))
	return newAppModel(context.Background(), Options{Engine: engine})
}

// countingPersister counts saves and can hold each one for a while. The
// engine serializes calls, so no locking is needed here.
type countingPersister struct {
	delay time.Duration
	saves int
	last  *session.Snapshot
}

func (p *countingPersister) Save(_ context.Context, _ string, snap *session.Snapshot) error {
	time.Sleep(p.delay)
	p.saves++
	p.last = snap
	return nil
}

func (p *countingPersister) Load(context.Context, string) (*session.Snapshot, error) {
	if p.last == nil {
		return nil, session.ErrNotFound
	}
	return p.last, nil
}

// startedQuiz returns a quiz screen with its first question loaded.
func startedQuiz(t *testing.T, engine *session.Engine) *quiz.QuizScreen {
	t.Helper()
	q := quiz.New(context.Background(), engine)
	q.Update(q.Init()())
	return q
}

func press(q *quiz.QuizScreen, r rune) tea.Cmd {
	_, cmd := q.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestAppModel_FrameShowsHeaderAndHints(t *testing.T) {
	m, _ := update(testModel(t), tea.WindowSizeMsg{Width: 100, Height: 30})
	frame := m.frame()
	if !strings.Contains(frame, "knowtest") {
		t.Error("header missing app name")
	}
	if !strings.Contains(frame, "calm-lion-07") {
		t.Error("header missing test name")
	}
	if !strings.Contains(frame, "Start") {
		t.Error("footer missing intro hint")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m, _ := update(testModel(t), tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.frame(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	_, cmd := update(testModel(t), tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_IntroHandsOverToQuiz(t *testing.T) {
	m := testModel(t)
	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	m, _ = update(m, msg)
	if got := m.router.Active().Title(); got != "Quiz" {
		t.Errorf("active title = %q, want Quiz", got)
	}
}

// Run with -race: ctrl+c stops the program while the quiz is still
// applying an answer on a command goroutine.
func TestSaveOnExit_WhileAnswerInFlight(t *testing.T) {
	cat := testCatalog(t)
	p := &countingPersister{delay: 20 * time.Millisecond}
	engine := session.NewEngine(cat, session.NewState("calm-lion-07", cat), session.WithPersister(p))
	q := startedQuiz(t, engine)

	cmd := press(q, '1')
	if cmd == nil {
		t.Fatal("expected answer command")
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cmd()
	}()

	if err := saveOnExit(context.Background(), engine, logger.Nop()); err != nil {
		t.Fatalf("saveOnExit() error: %v", err)
	}
	wg.Wait()

	if err := saveOnExit(context.Background(), engine, logger.Nop()); err != nil {
		t.Fatalf("saveOnExit() error: %v", err)
	}
	if p.last == nil {
		t.Fatal("nothing saved")
	}
	if got := p.last.Results["linux"].Answered[1]; got != 1 {
		t.Errorf("saved answers = %d, want 1", got)
	}
}

func TestSaveOnExit_AfterConfirmedQuit(t *testing.T) {
	cat := testCatalog(t)
	p := &countingPersister{}
	engine := session.NewEngine(cat, session.NewState("calm-lion-07", cat), session.WithPersister(p))
	q := startedQuiz(t, engine)

	press(q, 'q')
	cmd := press(q, 'y')
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	q.Update(cmd())
	if p.saves != 1 {
		t.Fatalf("saves after quit = %d, want 1", p.saves)
	}

	if err := saveOnExit(context.Background(), engine, logger.Nop()); err != nil {
		t.Fatalf("saveOnExit() error: %v", err)
	}
	if p.saves != 1 {
		t.Errorf("saves after exit = %d, want 1", p.saves)
	}
}

func TestSaveOnExit_UnansweredSession(t *testing.T) {
	cat := testCatalog(t)
	p := &countingPersister{}
	engine := session.NewEngine(cat, session.NewState("calm-lion-07", cat), session.WithPersister(p))

	if err := saveOnExit(context.Background(), engine, logger.Nop()); err != nil {
		t.Fatalf("saveOnExit() error: %v", err)
	}
	if p.saves != 1 {
		t.Errorf("saves = %d, want 1", p.saves)
	}
}
