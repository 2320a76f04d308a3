package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/knowtest/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "knowtest.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSnapshot(name string) *session.Snapshot {
	return &session.Snapshot{
		Version:              session.SnapshotVersion,
		TestName:             name,
		Topics:               []string{"git", "python"},
		TopicIndex:           1,
		Level:                3,
		QuestionIndex:        2,
		ConsecutiveCorrect:   1,
		ConsecutiveIncorrect: 0,
		Results: map[string]session.TopicSnapshot{
			"git": {
				PassedLevels:   []int{1, 2},
				CorrectAnswers: map[int]int{1: 3, 2: 3, 3: 1},
				Answered:       map[int]int{1: 3, 2: 4, 3: 2},
			},
		},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, "brave-fox-01")
	require.ErrorIs(t, err, session.ErrNotFound)

	want := testSnapshot("brave-fox-01")
	require.NoError(t, s.Save(ctx, "brave-fox-01", want))

	got, err := s.Load(ctx, "brave-fox-01")
	require.NoError(t, err)
	assert.Equal(t, want.Topics, got.Topics)
	assert.Equal(t, want.TopicIndex, got.TopicIndex)
	assert.Equal(t, want.Level, got.Level)
	assert.Equal(t, want.QuestionIndex, got.QuestionIndex)
	assert.Equal(t, want.ConsecutiveCorrect, got.ConsecutiveCorrect)
	assert.Equal(t, want.Results, got.Results)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := testSnapshot("t1")
	require.NoError(t, s.Save(ctx, "t1", snap))
	snap.TopicIndex = 2
	require.NoError(t, s.Save(ctx, "t1", snap))

	got, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TopicIndex)

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Complete())
}

func TestStore_CorruptData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "t1", testSnapshot("t1")))

	_, err := s.DB().Exec(`UPDATE sessions SET data = '{not json' WHERE name = 't1'`)
	require.NoError(t, err)

	_, err = s.Load(ctx, "t1")
	var perr *session.PersistenceError
	require.True(t, errors.As(err, &perr), "want *PersistenceError, got %v", err)
	assert.Equal(t, "load", perr.Op)
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", testSnapshot("a")))
	require.NoError(t, s.Save(ctx, "b", testSnapshot("b")))
	require.NoError(t, s.Events().AppendAnswerEvent(ctx, AnswerEventData{RunID: "r", TestName: "a", Topic: "git", Level: 1, QuestionID: "q", Outcome: "correct", Verdict: "none"}))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), session.ErrNotFound)

	events, err := s.Events().QueryAnswerEvents(ctx, "a", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)

	infos, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "b", infos[0].Name)
}

func TestStore_RejectsBadName(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Save(context.Background(), "../escape", testSnapshot("x")))
}

func TestEvents_QueryAndAccuracy(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Events()

	outcomes := []string{"correct", "incorrect", "correct", "dont_know", "skipped"}
	for i, o := range outcomes {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			RunID:      "run-1",
			TestName:   "t1",
			Topic:      "git",
			Level:      1,
			QuestionID: string(rune('a' + i)),
			Outcome:    o,
			Verdict:    "none",
		}))
	}

	events, err := repo.QueryAnswerEvents(ctx, "t1", QueryOpts{Limit: 3})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "skipped", events[0].Outcome, "newest first")
	assert.False(t, events[0].Timestamp.IsZero())

	acc, n, err := repo.TopicAccuracy(ctx, "t1", "git")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.InDelta(t, 0.5, acc, 1e-9)

	acc, n, err = repo.TopicAccuracy(ctx, "t1", "python")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, acc)
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"brave-fox-01", "final_exam.v2", "A"} {
		assert.NoError(t, ValidateName(ok), ok)
	}
	for _, bad := range []string{"", "../x", "a/b", "-lead", "sp ace"} {
		assert.Error(t, ValidateName(bad), bad)
	}
}
