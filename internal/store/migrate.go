package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table layouts for the entities in ent/schema. Column names follow the
// schema field names; store_test.go keeps the two in step.
var (
	ParentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	ParentsTable = &schema.Table{
		Name:       "parents",
		Columns:    ParentsColumns,
		PrimaryKey: []*schema.Column{ParentsColumns[0]},
	}

	ProfilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "name", Type: field.TypeString, Size: 24},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "parent_id", Type: field.TypeInt64},
	}
	ProfilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "profiles_parents_profiles",
				Columns:    []*schema.Column{ProfilesColumns[4]},
				RefColumns: []*schema.Column{ParentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "profile_score", Columns: []*schema.Column{ProfilesColumns[2]}},
		},
	}

	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "profile_id", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "questions_total", Type: field.TypeInt, Default: 0},
		{Name: "questions_answered", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	}
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_sequence", Columns: []*schema.Column{SessionEventsColumns[1]}},
			{Name: "sessionevent_timestamp", Columns: []*schema.Column{SessionEventsColumns[2]}},
			{Name: "sessionevent_profile_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[4]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{SessionEventsColumns[5]}},
		},
	}

	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "profile_id", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeInt},
		{Name: "note", Type: field.TypeString},
		{Name: "image", Type: field.TypeString},
		{Name: "given", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "time_ms", Type: field.TypeInt},
		{Name: "answer_format", Type: field.TypeString},
	}
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_sequence", Columns: []*schema.Column{AnswerEventsColumns[1]}},
			{Name: "answerevent_timestamp", Columns: []*schema.Column{AnswerEventsColumns[2]}},
			{Name: "answerevent_profile_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[4]}},
			{Name: "answerevent_note", Columns: []*schema.Column{AnswerEventsColumns[6]}},
			{Name: "answerevent_correct", Columns: []*schema.Column{AnswerEventsColumns[9]}},
		},
	}

	ParentSessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "token", Type: field.TypeString, Unique: true},
		{Name: "parent_id", Type: field.TypeInt64},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "expires_at", Type: field.TypeTime},
	}
	ParentSessionsTable = &schema.Table{
		Name:       "parent_sessions",
		Columns:    ParentSessionsColumns,
		PrimaryKey: []*schema.Column{ParentSessionsColumns[0]},
	}

	Tables = []*schema.Table{
		ParentsTable,
		ProfilesTable,
		SessionEventsTable,
		AnswerEventsTable,
		ParentSessionsTable,
	}
)

func init() {
	ProfilesTable.ForeignKeys[0].RefTable = ParentsTable
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
