package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RawTopic is a topic record as stored in a data file:
//
//	{"topic": "Git", "questions": [...], "choices": [...]}
type RawTopic struct {
	Topic     string         `json:"topic" yaml:"topic"`
	Questions []RawQuestion  `json:"questions" yaml:"questions"`
	Choices   []RawChoiceSet `json:"choices" yaml:"choices"`

	// Source is the file the record was read from. Not serialized.
	Source string `json:"-" yaml:"-"`
}

// RawQuestion is a question record.
type RawQuestion struct {
	ID         ID     `json:"id" yaml:"id"`
	Question   string `json:"question" yaml:"question"`
	Difficulty int    `json:"difficulty" yaml:"difficulty"`
}

// RawChoiceSet is a choice record. Answer is the zero-based correct index.
type RawChoiceSet struct {
	QuestionID ID       `json:"question_id" yaml:"question_id"`
	Choices    []string `json:"choices" yaml:"choices"`
	Answer     int      `json:"answer" yaml:"answer"`
}

// ID is a question identifier. Data files use either strings or integers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes canonical integers such as "12" or "-3" as numbers and
// everything else, "007" and "+5" included, as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(id)); err == nil && strconv.Itoa(n) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	*id = ID(node.Value)
	return nil
}
