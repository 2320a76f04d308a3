package session

import (
	"fmt"
	"time"

	"github.com/abhisek/knowtest/internal/catalog"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// Snapshot is the persisted form of a State. It is a deep copy; the
// in-flight question order is not part of it.
type Snapshot struct {
	Version              int                      `json:"version" yaml:"version"`
	TestName             string                   `json:"test_name" yaml:"test_name"`
	Topics               []string                 `json:"topics" yaml:"topics"`
	TopicIndex           int                      `json:"current_topic_index" yaml:"current_topic_index"`
	Level                int                      `json:"current_level" yaml:"current_level"`
	QuestionIndex        int                      `json:"current_question_index" yaml:"current_question_index"`
	ConsecutiveCorrect   int                      `json:"consecutive_correct" yaml:"consecutive_correct"`
	ConsecutiveIncorrect int                      `json:"consecutive_incorrect" yaml:"consecutive_incorrect"`
	Results              map[string]TopicSnapshot `json:"results" yaml:"results"`
	SavedAt              time.Time                `json:"saved_at" yaml:"saved_at"`
}

// TopicSnapshot is the persisted form of a TopicResult.
type TopicSnapshot struct {
	PassedLevels   []int       `json:"passed_levels" yaml:"passed_levels"`
	CorrectAnswers map[int]int `json:"correct_answers" yaml:"correct_answers"`
	Answered       map[int]int `json:"answered" yaml:"answered"`
}

// TakeSnapshot deep-copies st.
func TakeSnapshot(st *State) *Snapshot {
	snap := &Snapshot{
		Version:              SnapshotVersion,
		TestName:             st.TestName,
		Topics:               append([]string(nil), st.Topics...),
		TopicIndex:           st.TopicIndex,
		Level:                int(st.Level),
		QuestionIndex:        st.QuestionIndex,
		ConsecutiveCorrect:   st.ConsecutiveCorrect,
		ConsecutiveIncorrect: st.ConsecutiveIncorrect,
		Results:              make(map[string]TopicSnapshot, len(st.Results)),
		SavedAt:              time.Now().UTC(),
	}
	for name, r := range st.Results {
		ts := TopicSnapshot{
			CorrectAnswers: make(map[int]int, len(r.Correct)),
			Answered:       make(map[int]int, len(r.Answered)),
		}
		for _, l := range r.PassedList() {
			ts.PassedLevels = append(ts.PassedLevels, int(l))
		}
		for l, n := range r.Correct {
			ts.CorrectAnswers[int(l)] = n
		}
		for l, n := range r.Answered {
			ts.Answered[int(l)] = n
		}
		snap.Results[name] = ts
	}
	return snap
}

// Restore rebuilds a State from snap, checking it against cat. A snapshot
// that names a topic the catalog lacks or holds out-of-range indices yields
// a *PersistenceError and no state.
func Restore(cat *catalog.Catalog, snap *Snapshot) (*State, error) {
	if snap == nil {
		return nil, &PersistenceError{Op: "restore", Err: fmt.Errorf("nil snapshot")}
	}
	fail := func(format string, args ...any) (*State, error) {
		return nil, &PersistenceError{Op: "restore", Name: snap.TestName, Err: fmt.Errorf(format, args...)}
	}

	if snap.Version > SnapshotVersion {
		return fail("snapshot version %d is newer than supported %d", snap.Version, SnapshotVersion)
	}
	if len(snap.Topics) == 0 {
		return fail("snapshot has no topics")
	}
	topics := make([]string, len(snap.Topics))
	for i, name := range snap.Topics {
		t, ok := cat.Topic(name)
		if !ok {
			return fail("topic %q is not in the catalog", name)
		}
		topics[i] = t.Name
	}
	for name := range snap.Results {
		if _, ok := cat.Topic(name); !ok {
			return fail("result for topic %q which is not in the catalog", name)
		}
	}
	if snap.TopicIndex < 0 || snap.TopicIndex > len(snap.Topics) {
		return fail("topic index %d out of range [0,%d]", snap.TopicIndex, len(snap.Topics))
	}
	if snap.ConsecutiveCorrect < 0 || snap.ConsecutiveIncorrect < 0 {
		return fail("negative streak counters")
	}

	complete := snap.TopicIndex == len(snap.Topics)
	level := catalog.Level(snap.Level)
	if !complete {
		if !level.Valid() {
			return fail("level %d out of range", snap.Level)
		}
		topic, _ := cat.Topic(snap.Topics[snap.TopicIndex])
		if n := len(topic.QuestionsAt(level)); snap.QuestionIndex < 0 || snap.QuestionIndex > n {
			return fail("question index %d out of range [0,%d]", snap.QuestionIndex, n)
		}
	}

	st := &State{
		TestName:             snap.TestName,
		Topics:               topics,
		TopicIndex:           snap.TopicIndex,
		Level:                level,
		QuestionIndex:        snap.QuestionIndex,
		ConsecutiveCorrect:   snap.ConsecutiveCorrect,
		ConsecutiveIncorrect: snap.ConsecutiveIncorrect,
		Results:              make(map[string]*TopicResult, len(snap.Results)),
	}
	for name, ts := range snap.Results {
		r := NewTopicResult()
		for _, l := range ts.PassedLevels {
			if !catalog.Level(l).Valid() {
				return fail("topic %q passed level %d out of range", name, l)
			}
			r.PassedLevels[catalog.Level(l)] = true
		}
		for l, n := range ts.CorrectAnswers {
			r.Correct[catalog.Level(l)] = n
		}
		for l, n := range ts.Answered {
			r.Answered[catalog.Level(l)] = n
		}
		st.Results[catalog.NormalizeName(name)] = r
	}
	return st, nil
}
