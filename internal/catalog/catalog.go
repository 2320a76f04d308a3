package catalog

import (
	"sort"
)

// Question is a single prompt at a given difficulty level.
type Question struct {
	ID    string
	Text  string
	Level Level
}

// ChoiceSet holds the options for one question and the index of the right one.
type ChoiceSet struct {
	QuestionID string
	Options    []string
	Correct    int
}

// IsCorrect reports whether choice (zero-based) is the right option.
func (c ChoiceSet) IsCorrect(choice int) bool {
	return choice == c.Correct
}

// Topic is a named group of questions spanning the five levels.
// Topics are immutable once the catalog is built.
type Topic struct {
	// Name is the normalized identifier used for filtering and persistence.
	Name string
	// Title is the name as written in the source file.
	Title     string
	Questions []Question

	choices map[string]ChoiceSet
	byLevel map[Level][]Question
}

// Choices returns the choice set for a question id.
func (t *Topic) Choices(questionID string) (ChoiceSet, bool) {
	cs, ok := t.choices[questionID]
	return cs, ok
}

// QuestionsAt returns the questions at the given level in source order.
// The returned slice must not be modified.
func (t *Topic) QuestionsAt(level Level) []Question {
	return t.byLevel[level]
}

// Catalog is the validated, filtered set of topics available to a session.
type Catalog struct {
	topics []*Topic
	byName map[string]*Topic
}

// Topics returns all topics ordered by name.
func (c *Catalog) Topics() []*Topic {
	return c.topics
}

// Topic looks up a topic by its normalized name.
func (c *Catalog) Topic(name string) (*Topic, bool) {
	t, ok := c.byName[NormalizeName(name)]
	return t, ok
}

// Names returns the normalized topic names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// New validates raw topic records, applies the filter and returns the
// resulting catalog. Validation covers every record, including ones the
// filter would drop, so a broken data directory is reported regardless of
// the selection.
func New(records []RawTopic, filter Filter) (*Catalog, error) {
	if err := filter.check(); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	all := make([]*Topic, 0, len(records))
	for _, r := range records {
		all = append(all, buildTopic(r))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	selected := filter.apply(all)
	if len(selected) == 0 {
		return nil, &ConfigurationError{Reason: "no topics match the include/exclude selection"}
	}

	c := &Catalog{
		topics: selected,
		byName: make(map[string]*Topic, len(selected)),
	}
	for _, t := range selected {
		c.byName[t.Name] = t
	}
	return c, nil
}

func buildTopic(r RawTopic) *Topic {
	t := &Topic{
		Name:    NormalizeName(r.Topic),
		Title:   r.Topic,
		choices: make(map[string]ChoiceSet, len(r.Choices)),
		byLevel: make(map[Level][]Question),
	}
	for _, q := range r.Questions {
		question := Question{ID: string(q.ID), Text: q.Question, Level: Level(q.Difficulty)}
		t.Questions = append(t.Questions, question)
		t.byLevel[question.Level] = append(t.byLevel[question.Level], question)
	}
	for _, cs := range r.Choices {
		t.choices[string(cs.QuestionID)] = ChoiceSet{
			QuestionID: string(cs.QuestionID),
			Options:    append([]string(nil), cs.Choices...),
			Correct:    cs.Answer,
		}
	}
	return t
}
