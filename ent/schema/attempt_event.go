package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records the start of a timed assessment attempt.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Comment("UUID of the attempt"),
		field.String("assessment_id").
			NotEmpty(),
		field.String("skill_id").
			Default(""),
		field.Int("question_count"),
		field.Int("time_limit_secs"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id").Unique(),
		index.Fields("assessment_id"),
	}
}
