package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Profile is a kid who plays quizzes under a parent account.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			MaxLen(24),
		field.Int("score").
			Default(0).
			Comment("Lifetime points, only ever incremented"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Int64("parent_id"),
	}
}

func (Profile) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("parent", Parent.Type).
			Ref("profiles").
			Field("parent_id").
			Unique().
			Required().
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

func (Profile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("score"),
	}
}
