package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizEvent records one step of a quiz session: start, answer, hint,
// complete or reset.
type QuizEvent struct {
	ent.Schema
}

func (QuizEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Session the event belongs to"),
		field.String("action").
			NotEmpty().
			Comment("start, answer, hint, complete or reset"),
		field.Int("question_id").
			Default(0).
			Comment("Question the event is about, 0 for session events"),
		field.String("payload").
			Default("{}").
			Comment("Action-specific JSON document"),
	}
}

func (QuizEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
