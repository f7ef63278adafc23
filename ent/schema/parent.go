package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Parent is the account that owns kid profiles.
type Parent struct {
	ent.Schema
}

func (Parent) Fields() []ent.Field {
	return []ent.Field{
		field.String("email").
			NotEmpty().
			Unique().
			Comment("Lower-cased login email"),
		field.String("password_hash").
			NotEmpty().
			Sensitive().
			Comment("bcrypt hash"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Parent) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("profiles", Profile.Type),
	}
}
