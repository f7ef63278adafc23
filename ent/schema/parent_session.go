package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ParentSession is the parent sign-in remembered on this device. It has
// no edge to Parent because parents may live in the remote backend.
type ParentSession struct {
	ent.Schema
}

func (ParentSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("token").
			NotEmpty().
			Unique().
			Sensitive(),
		field.Int64("parent_id"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("expires_at").
			Comment("Pushed forward on every restore"),
	}
}
