package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one accepted action of a test run.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			NotEmpty().
			Comment("One id per start or resume of a test"),
		field.String("test_name").
			NotEmpty(),
		field.String("topic").
			NotEmpty().
			Comment("Normalized topic name"),
		field.Int("level").
			Range(1, 5),
		field.String("question_id"),
		field.Enum("outcome").
			Values("correct", "incorrect", "dont_know", "skipped"),
		field.Enum("verdict").
			Values("none", "passed", "failed", "ended_unmarked"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("test_name"),
		index.Fields("run_id"),
	}
}
