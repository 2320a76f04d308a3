package session

import "github.com/abhisek/knowtest/internal/catalog"

// Score is the correct/answered tally for one (topic, level).
type Score struct {
	Correct  int
	Answered int
}

// Ratio returns Correct/Answered, or 0 when nothing was answered.
func (s Score) Ratio() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// LevelScore returns the score for a topic level. The bool is false when the
// level was never started.
func LevelScore(st *State, topic string, level catalog.Level) (Score, bool) {
	res := st.Result(catalog.NormalizeName(topic))
	if res == nil || res.Answered[level] == 0 {
		return Score{}, false
	}
	return Score{Correct: res.Correct[level], Answered: res.Answered[level]}, true
}

// LevelPassedByRatio reports whether more than half of the answers at a level
// were correct. This is independent of the streak-based PassedLevels.
func LevelPassedByRatio(st *State, topic string, level catalog.Level) bool {
	s, ok := LevelScore(st, topic, level)
	return ok && s.Ratio() > 0.5
}

// HighestPassedLevel returns the highest streak-passed level, or 0.
func HighestPassedLevel(st *State, topic string) catalog.Level {
	res := st.Result(catalog.NormalizeName(topic))
	if res == nil {
		return 0
	}
	var best catalog.Level
	for l, ok := range res.PassedLevels {
		if ok && l > best {
			best = l
		}
	}
	return best
}

// HighestRatioLevel returns the highest level passed by ratio, or 0.
func HighestRatioLevel(st *State, topic string) catalog.Level {
	var best catalog.Level
	for _, l := range catalog.AllLevels() {
		if LevelPassedByRatio(st, topic, l) {
			best = l
		}
	}
	return best
}

// Progress is how far the session is through the current topic and level,
// each in [0, 1].
type Progress struct {
	Topic float64
	Level float64
}

// MeasureProgress returns the fraction of the current topic's questions and
// of the current level's questions that have a recorded answer. An empty
// question set counts as 0; a complete session is {1, 1}.
func MeasureProgress(cat *catalog.Catalog, st *State) Progress {
	if st.Complete() {
		return Progress{Topic: 1, Level: 1}
	}
	topic, ok := cat.Topic(st.CurrentTopic())
	if !ok {
		return Progress{}
	}
	res := st.Result(topic.Name)
	if res == nil {
		return Progress{}
	}

	var answered int
	for _, n := range res.Answered {
		answered += n
	}
	return Progress{
		Topic: fraction(answered, len(topic.Questions)),
		Level: fraction(res.Answered[st.Level], len(topic.QuestionsAt(st.Level))),
	}
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	f := float64(n) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}
