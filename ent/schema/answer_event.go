package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one accepted answer. Overwrites produce new events;
// the latest sequence per question wins.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty(),
		field.String("assessment_id").
			NotEmpty(),
		field.String("question_id").
			NotEmpty(),
		field.Text("value").
			Default("").
			Comment("Raw answer; multiple selections are joined with |"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
	}
}
