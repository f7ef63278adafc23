package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz lifecycle events (start/end).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("mode").
			NotEmpty().
			Comment("multiple_choice or builder"),
		field.Int("questions_total").
			Default(0).
			Comment("Questions drawn for the session"),
		field.Int("questions_answered").
			Default(0).
			Comment("Questions answered (on end only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on end only)"),
		field.Int("score").
			Default(0).
			Comment("Points earned (on end only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Wall-clock duration in seconds (on end only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
