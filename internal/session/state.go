package session

import (
	"sort"

	"github.com/abhisek/knowtest/internal/catalog"
)

// TopicResult records how a user did on one topic.
type TopicResult struct {
	// PassedLevels is the set of levels passed by streak.
	PassedLevels map[catalog.Level]bool

	// Correct counts correct answers per level.
	Correct map[catalog.Level]int

	// Answered counts every answer (correct, wrong or "don't know") per level.
	Answered map[catalog.Level]int
}

// NewTopicResult returns an empty result.
func NewTopicResult() *TopicResult {
	return &TopicResult{
		PassedLevels: make(map[catalog.Level]bool),
		Correct:      make(map[catalog.Level]int),
		Answered:     make(map[catalog.Level]int),
	}
}

// Passed reports whether level was passed by streak.
func (r *TopicResult) Passed(level catalog.Level) bool {
	return r.PassedLevels[level]
}

// PassedList returns the passed levels in ascending order.
func (r *TopicResult) PassedList() []catalog.Level {
	out := make([]catalog.Level, 0, len(r.PassedLevels))
	for l, ok := range r.PassedLevels {
		if ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// State is the full position of a test session. It is owned by one Engine
// at a time and threaded explicitly; nothing else mutates it.
type State struct {
	// TestName identifies the session in the persistence backend.
	TestName string

	// Topics is the topic sequence fixed when the session started.
	Topics []string

	// TopicIndex is the index into Topics of the topic in flight.
	// len(Topics) means the session is complete.
	TopicIndex int

	// Level is the level in flight within the current topic.
	Level catalog.Level

	// QuestionIndex is the position within the shuffled order of the level.
	QuestionIndex int

	ConsecutiveCorrect   int
	ConsecutiveIncorrect int

	// Results holds one entry per topic encountered so far.
	Results map[string]*TopicResult

	// order is the shuffled question order of the level in flight.
	// It is rebuilt on every level entry and never persisted.
	order []catalog.Question
}

// NewState returns a fresh state positioned at the first level of the first
// catalog topic.
func NewState(testName string, cat *catalog.Catalog) *State {
	return &State{
		TestName: testName,
		Topics:   cat.Names(),
		Level:    catalog.MinLevel,
		Results:  make(map[string]*TopicResult),
	}
}

// Complete reports whether every topic has been processed.
func (s *State) Complete() bool {
	return s.TopicIndex >= len(s.Topics)
}

// CurrentTopic returns the topic in flight, or "" when complete.
func (s *State) CurrentTopic() string {
	if s.Complete() {
		return ""
	}
	return s.Topics[s.TopicIndex]
}

// Result returns the result for topic, or nil if the topic has not been
// encountered.
func (s *State) Result(topic string) *TopicResult {
	return s.Results[topic]
}

// resultFor returns the result for topic, creating it on first encounter.
func (s *State) resultFor(topic string) *TopicResult {
	r, ok := s.Results[topic]
	if !ok {
		r = NewTopicResult()
		s.Results[topic] = r
	}
	return r
}

func (s *State) resetCounters() {
	s.ConsecutiveCorrect = 0
	s.ConsecutiveIncorrect = 0
}

// nextLevel leaves the current level without touching its verdict.
func (s *State) nextLevel() {
	s.resetCounters()
	s.Level++
	s.QuestionIndex = 0
	s.order = nil
}

// nextTopic abandons the remaining levels of the current topic.
func (s *State) nextTopic() {
	s.resetCounters()
	s.TopicIndex++
	s.Level = catalog.MinLevel
	s.QuestionIndex = 0
	s.order = nil
}
