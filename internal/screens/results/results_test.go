package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/session"
)

func testReport() *session.Report {
	levels := make([]session.LevelReport, 0, 5)
	for _, l := range catalog.AllLevels() {
		lr := session.LevelReport{Level: l}
		if l <= catalog.Intermediate {
			lr.Started = true
			lr.Score = session.Score{Correct: 3, Answered: 4}
			lr.Passed = l == catalog.Beginner
		}
		levels = append(levels, lr)
	}
	return &session.Report{
		TestName: "brave-otter",
		Complete: true,
		Topics: []session.TopicReport{
			{
				Name: "git", Title: "Git", Started: true,
				PassedLevels:   []catalog.Level{catalog.Beginner},
				Highest:        catalog.Beginner,
				HighestByRatio: catalog.Intermediate,
				Levels:         levels,
			},
			{Name: "sql", Title: "SQL"},
		},
	}
}

func TestResults_Title(t *testing.T) {
	if got := New(testReport()).Title(); got != "Results" {
		t.Errorf("Title = %q, want %q", got, "Results")
	}
}

func TestResults_View(t *testing.T) {
	view := New(testReport()).View(80, 40)
	for _, want := range []string{"Test complete", "brave-otter", "1 of 2", "Git", "3/4", "not started", "highest passed: Beginner"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResults_Paused(t *testing.T) {
	r := testReport()
	r.Complete = false
	if view := New(r).View(80, 40); !strings.Contains(view, "Test paused") {
		t.Error("expected paused heading")
	}
}

func TestResults_EnterQuits(t *testing.T) {
	s := New(testReport())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestResults_ScrollClamped(t *testing.T) {
	s := New(testReport())
	for range 100 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := s.View(80, 5)
	if got := len(strings.Split(view, "\n")); got != 5 {
		t.Errorf("lines = %d, want 5", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset < 0 {
		t.Error("offset went negative")
	}
}
