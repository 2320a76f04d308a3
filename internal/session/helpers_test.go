package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/abhisek/knowtest/internal/catalog"
)

// testCatalog builds a catalog where each topic has perLevel[l-1] questions
// at level l. Every question has three options; option 1 is correct.
func testCatalog(t *testing.T, perLevel map[string][5]int) *catalog.Catalog {
	t.Helper()
	var records []catalog.RawTopic
	for name, counts := range perLevel {
		r := catalog.RawTopic{Topic: name}
		for lvl, n := range counts {
			for i := 0; i < n; i++ {
				id := catalog.ID(fmt.Sprintf("%s-%d-%d", name, lvl+1, i))
				r.Questions = append(r.Questions, catalog.RawQuestion{ID: id, Question: "question " + string(id), Difficulty: lvl + 1})
				r.Choices = append(r.Choices, catalog.RawChoiceSet{QuestionID: id, Choices: []string{"a", "b", "c"}, Answer: 1})
			}
		}
		records = append(records, r)
	}
	cat, err := catalog.New(records, catalog.Filter{})
	if err != nil {
		t.Fatalf("catalog.New() error: %v", err)
	}
	return cat
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// memPersister keeps the last snapshot per name and counts saves.
type memPersister struct {
	snaps map[string]*Snapshot
	saves int
	fail  error
}

func newMemPersister() *memPersister {
	return &memPersister{snaps: make(map[string]*Snapshot)}
}

func (m *memPersister) Save(_ context.Context, name string, snap *Snapshot) error {
	m.saves++
	if m.fail != nil {
		return m.fail
	}
	m.snaps[name] = snap
	return nil
}

func (m *memPersister) Load(_ context.Context, name string) (*Snapshot, error) {
	snap, ok := m.snaps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

var errDiskFull = errors.New("disk full")

// correctChoice returns the right option for the current prompt.
func correctChoice(t *testing.T, e *Engine) int {
	t.Helper()
	p, err := e.NextPrompt()
	if err != nil {
		t.Fatalf("NextPrompt() error: %v", err)
	}
	cs, ok := p.Topic.Choices(p.Question.ID)
	if !ok {
		t.Fatalf("no choices for %s", p.Question.ID)
	}
	return cs.Correct
}

func answerCorrect(t *testing.T, e *Engine) Turn {
	t.Helper()
	turn, err := e.Apply(context.Background(), Answer{Choice: correctChoice(t, e)})
	if err != nil {
		t.Fatalf("Apply(correct) error: %v", err)
	}
	return turn
}

func answerWrong(t *testing.T, e *Engine) Turn {
	t.Helper()
	wrong := (correctChoice(t, e) + 1) % 3
	turn, err := e.Apply(context.Background(), Answer{Choice: wrong})
	if err != nil {
		t.Fatalf("Apply(wrong) error: %v", err)
	}
	return turn
}
