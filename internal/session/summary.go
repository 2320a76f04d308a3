package session

import "github.com/abhisek/knowtest/internal/catalog"

// Report summarizes a session per topic.
type Report struct {
	TestName string
	Complete bool
	Topics   []TopicReport
}

// TopicReport is the per-topic part of a Report.
type TopicReport struct {
	Name  string
	Title string

	// Started is false for topics the session never reached.
	Started bool

	PassedLevels   []catalog.Level
	Highest        catalog.Level // streak-based
	HighestByRatio catalog.Level
	Levels         []LevelReport
}

// LevelReport is the per-level part of a TopicReport.
type LevelReport struct {
	Level         catalog.Level
	Started       bool
	Score         Score
	Passed        bool
	PassedByRatio bool
}

// BuildReport computes the report for st in the session's topic order.
func BuildReport(cat *catalog.Catalog, st *State) *Report {
	r := &Report{
		TestName: st.TestName,
		Complete: st.Complete(),
		Topics:   make([]TopicReport, 0, len(st.Topics)),
	}

	for _, name := range st.Topics {
		tr := TopicReport{Name: name, Title: name}
		if t, ok := cat.Topic(name); ok {
			tr.Title = t.Title
		}

		res := st.Result(name)
		if res != nil {
			tr.Started = true
			tr.PassedLevels = res.PassedList()
			tr.Highest = HighestPassedLevel(st, name)
			tr.HighestByRatio = HighestRatioLevel(st, name)
		}

		for _, l := range catalog.AllLevels() {
			score, started := LevelScore(st, name, l)
			tr.Levels = append(tr.Levels, LevelReport{
				Level:         l,
				Started:       started,
				Score:         score,
				Passed:        res != nil && res.Passed(l),
				PassedByRatio: started && score.Ratio() > 0.5,
			})
		}
		r.Topics = append(r.Topics, tr)
	}
	return r
}

// PassedTopics returns how many topics have at least one passed level.
func (r *Report) PassedTopics() int {
	n := 0
	for _, t := range r.Topics {
		if len(t.PassedLevels) > 0 {
			n++
		}
	}
	return n
}
