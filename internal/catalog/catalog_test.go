package catalog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func rawTopic(name string, perLevel int) RawTopic {
	r := RawTopic{Topic: name}
	for lvl := 1; lvl <= 5; lvl++ {
		for i := 0; i < perLevel; i++ {
			id := ID(fmt.Sprintf("%d-%d", lvl, i))
			r.Questions = append(r.Questions, RawQuestion{ID: id, Question: "q " + string(id), Difficulty: lvl})
			r.Choices = append(r.Choices, RawChoiceSet{QuestionID: id, Choices: []string{"a", "b", "c"}, Answer: 1})
		}
	}
	return r
}

func TestNew_OrdersTopicsByName(t *testing.T) {
	cat, err := New([]RawTopic{rawTopic("Python", 1), rawTopic("Git", 1), rawTopic("DevOps", 1)}, Filter{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got := strings.Join(cat.Names(), ",")
	if want := "dev_ops,git,python"; got != want {
		t.Errorf("Names() = %s, want %s", got, want)
	}
}

func TestNew_IndexesQuestionsByLevel(t *testing.T) {
	cat, err := New([]RawTopic{rawTopic("Git", 2)}, Filter{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	topic, ok := cat.Topic("Git")
	if !ok {
		t.Fatal("Topic(Git) not found")
	}
	if topic.Title != "Git" {
		t.Errorf("Title = %q, want Git", topic.Title)
	}
	for _, lvl := range AllLevels() {
		if n := len(topic.QuestionsAt(lvl)); n != 2 {
			t.Errorf("QuestionsAt(%s) = %d questions, want 2", lvl, n)
		}
	}
	cs, ok := topic.Choices("3-1")
	if !ok {
		t.Fatal("Choices(3-1) not found")
	}
	if !cs.IsCorrect(1) || cs.IsCorrect(0) {
		t.Errorf("IsCorrect mismatch for correct index %d", cs.Correct)
	}
}

func TestNew_ValidationProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *RawTopic)
		want   string
	}{
		{"orphan question", func(r *RawTopic) { r.Choices = r.Choices[1:] }, "has no choices"},
		{"bad answer index", func(r *RawTopic) { r.Choices[0].Answer = 3 }, "out of range"},
		{"negative answer index", func(r *RawTopic) { r.Choices[0].Answer = -1 }, "out of range"},
		{"one option", func(r *RawTopic) { r.Choices[0].Choices = []string{"only"}; r.Choices[0].Answer = 0 }, "need at least 2"},
		{"level too high", func(r *RawTopic) { r.Questions[0].Difficulty = 6 }, "outside 1..5"},
		{"level zero", func(r *RawTopic) { r.Questions[0].Difficulty = 0 }, "outside 1..5"},
		{"duplicate id", func(r *RawTopic) { r.Questions[1].ID = r.Questions[0].ID }, "duplicate question id"},
		{"unknown choice ref", func(r *RawTopic) { r.Choices = append(r.Choices, RawChoiceSet{QuestionID: "zz", Choices: []string{"a", "b"}}) }, "unknown question"},
		{"empty topic", func(r *RawTopic) { r.Topic = "  " }, "topic name is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rawTopic("Git", 2)
			tt.mutate(&r)
			_, err := New([]RawTopic{r}, Filter{})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(verr.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", verr.Error(), tt.want)
			}
		})
	}
}

func TestNew_DuplicateTopicNames(t *testing.T) {
	_, err := New([]RawTopic{rawTopic("Infrastructure as Code", 1), rawTopic("InfrastructureAsCode", 1)}, Filter{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("New() error = %v, want *ValidationError", err)
	}
	if !strings.Contains(verr.Error(), "duplicate topic name") {
		t.Errorf("error %q does not mention duplicate topic", verr.Error())
	}
}

func TestNew_CollectsAllProblems(t *testing.T) {
	r := rawTopic("Git", 1)
	r.Questions[0].Difficulty = 9
	r.Choices[1].Answer = 7
	_, err := New([]RawTopic{r}, Filter{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("New() error = %v, want *ValidationError", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("Problems = %d, want 2: %v", len(verr.Problems), verr.Problems)
	}
}

func TestNew_Filters(t *testing.T) {
	records := []RawTopic{rawTopic("Git", 1), rawTopic("Python", 1), rawTopic("DevOps", 1)}

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"none", Filter{}, "dev_ops,git,python"},
		{"include", Filter{Include: []string{"python", "Git"}}, "git,python"},
		{"include ignores unknown", Filter{Include: []string{"git", "rust"}}, "git"},
		{"exclude", Filter{Exclude: []string{"Dev-Ops"}}, "git,python"},
		{"exclude unknown", Filter{Exclude: []string{"rust"}}, "dev_ops,git,python"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := New(records, tt.filter)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := strings.Join(cat.Names(), ","); got != tt.want {
				t.Errorf("Names() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNew_FilterConfigurationErrors(t *testing.T) {
	records := []RawTopic{rawTopic("Git", 1)}

	_, err := New(records, Filter{Include: []string{"git"}, Exclude: []string{"python"}})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("include+exclude error = %v, want *ConfigurationError", err)
	}

	_, err = New(records, Filter{Include: []string{"rust"}})
	if !errors.As(err, &cerr) {
		t.Errorf("empty selection error = %v, want *ConfigurationError", err)
	}

	_, err = New(records, Filter{Exclude: []string{"git"}})
	if !errors.As(err, &cerr) {
		t.Errorf("exclude-all error = %v, want *ConfigurationError", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Git", "git"},
		{"DevOps", "dev_ops"},
		{"Infrastructure as Code", "infrastructure_as_code"},
		{"InfrastructureAsCode", "infrastructure_as_code"},
		{"site-reliability engineering", "site_reliability_engineering"},
		{"AWS", "aws"},
		{"HTTPServer", "http_server"},
		{"  Machine   Learning ", "machine_learning"},
		{"already_snake", "already_snake"},
		{"Ｇｉｔ", "git"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if Beginner.String() != "Beginner" || Master.String() != "Master" {
		t.Errorf("level names = %s..%s", Beginner, Master)
	}
	if Level(7).Valid() {
		t.Error("Level(7).Valid() = true, want false")
	}
}
