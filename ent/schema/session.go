package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Session holds the latest snapshot of a test, keyed by test name.
type Session struct {
	ent.Schema
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			Unique().
			Immutable(),
		field.JSON("data", map[string]any{}).
			Comment("Session snapshot as JSON"),
		field.Int("topic_index").
			Comment("Denormalized for listing without decoding data"),
		field.Int("topic_count"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
