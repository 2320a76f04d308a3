package quiz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/router"
	"github.com/abhisek/knowtest/internal/screen"
	sess "github.com/abhisek/knowtest/internal/session"
)

// newTestQuiz builds a quiz over one topic with two questions per level.
func newTestQuiz(t *testing.T) *QuizScreen {
	t.Helper()
	r := catalog.RawTopic{Topic: "Git"}
	for lvl := 1; lvl <= 5; lvl++ {
		for i := 0; i < 2; i++ {
			id := catalog.ID(fmt.Sprintf("q%d-%d", lvl, i))
			r.Questions = append(r.Questions, catalog.RawQuestion{ID: id, Question: "What is " + string(id) + "?", Difficulty: lvl})
			r.Choices = append(r.Choices, catalog.RawChoiceSet{QuestionID: id, Choices: []string{"alpha", "beta", "gamma"}, Answer: 2})
		}
	}
	cat, err := catalog.New([]catalog.RawTopic{r}, catalog.Filter{})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	engine := sess.NewEngine(cat, sess.NewState("quiz-test", cat))
	return New(context.Background(), engine)
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *QuizScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := s.Update(cmd())
	return next
}

func started(t *testing.T) *QuizScreen {
	t.Helper()
	s := newTestQuiz(t)
	if next := run(t, s, s.Init()); next != nil {
		t.Fatalf("prompt load returned unexpected command")
	}
	if s.prompt == nil {
		t.Fatal("prompt not loaded")
	}
	return s
}

func press(s *QuizScreen, r rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	return cmd
}

func TestQuiz_ShowsQuestion(t *testing.T) {
	s := started(t)
	view := s.View(80, 24)
	if !strings.Contains(view, s.prompt.Question.Text) {
		t.Errorf("view does not contain question %q", s.prompt.Question.Text)
	}
	if !strings.Contains(view, "Beginner") {
		t.Error("view does not show the level")
	}
	if !strings.Contains(view, "I don't know") {
		t.Error("view does not offer don't know")
	}
}

func TestQuiz_CorrectAnswerShowsFeedback(t *testing.T) {
	s := started(t)
	next := run(t, s, press(s, '3'))
	if next != nil {
		t.Error("feedback should wait for a key")
	}
	if s.turn == nil || s.turn.Outcome != sess.OutcomeCorrect {
		t.Fatalf("turn = %+v, want correct", s.turn)
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("view missing correct feedback")
	}

	// Any key moves to the next question.
	run(t, s, press(s, 'x'))
	if s.turn != nil {
		t.Error("feedback not cleared after continuing")
	}
	if s.prompt.Position != 2 {
		t.Errorf("Position = %d, want 2", s.prompt.Position)
	}
}

func TestQuiz_WrongAnswerShowsCorrectOption(t *testing.T) {
	s := started(t)
	run(t, s, press(s, '1'))
	view := s.View(80, 24)
	if !strings.Contains(view, "The answer is: gamma") {
		t.Errorf("view missing the right answer:\n%s", view)
	}
}

func TestQuiz_OutOfRangeDigitWarns(t *testing.T) {
	s := started(t)
	if cmd := press(s, '9'); cmd != nil {
		t.Error("invalid choice should not reach the engine")
	}
	if s.warning == "" {
		t.Error("expected a warning for an invalid choice")
	}
	if s.prompt.Position != 1 {
		t.Errorf("Position = %d, want 1", s.prompt.Position)
	}
}

func TestQuiz_CursorSelect(t *testing.T) {
	s := started(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)
	if s.turn == nil || s.turn.Choice != 2 {
		t.Fatalf("turn = %+v, want choice 2", s.turn)
	}
}

func TestQuiz_QuitNeedsConfirmation(t *testing.T) {
	s := started(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc should only ask for confirmation")
	}
	if !s.confirming {
		t.Fatal("expected confirmation prompt")
	}

	press(s, 'n')
	if s.confirming {
		t.Fatal("n should cancel the confirmation")
	}

	press(s, 'q')
	next := run(t, s, press(s, 'y'))
	if next == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := next().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestQuiz_SkipLastTopicShowsResults(t *testing.T) {
	s := started(t)
	// Options are 3, so 5 skips the topic.
	next := run(t, s, press(s, '5'))
	if next == nil {
		t.Fatal("expected results command")
	}
	msg, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg")
	}
	if msg.Screen.Title() != "Results" {
		t.Errorf("Title = %q, want Results", msg.Screen.Title())
	}
}

func TestQuiz_KeyHintsFollowState(t *testing.T) {
	s := started(t)
	if got := s.KeyHints(); len(got) != 4 {
		t.Errorf("asking hints = %d, want 4", len(got))
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if got := s.KeyHints(); len(got) != 2 {
		t.Errorf("confirm hints = %d, want 2", len(got))
	}
}

var _ screen.Screen = (*QuizScreen)(nil)
