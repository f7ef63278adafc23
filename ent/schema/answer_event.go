package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answered note within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("question_id").
			Comment("Position-independent question ID within the session"),
		field.String("note").
			NotEmpty().
			Comment("Canonical answer, e.g. A♭"),
		field.String("image").
			NotEmpty().
			Comment("Staff image handle shown"),
		field.String("given").
			Comment("What the learner answered"),
		field.Bool("correct"),
		field.Int("time_ms").
			Comment("Milliseconds to answer"),
		field.String("answer_format").
			NotEmpty().
			Comment("multiple_choice or builder"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("note"),
		index.Fields("correct"),
	}
}
