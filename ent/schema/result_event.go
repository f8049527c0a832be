package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResultEvent records the scored outcome of a submitted attempt.
type ResultEvent struct {
	ent.Schema
}

func (ResultEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResultEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty(),
		field.String("assessment_id").
			NotEmpty(),
		field.String("assessment_name").
			Default(""),
		field.String("skill_id").
			Default(""),
		field.Int("score").
			Comment("0-100"),
		field.Int("passing_score"),
		field.Int("total_questions"),
		field.Int("correct_answers"),
		field.Int("elapsed_secs"),
		field.String("proficiency").
			Comment("beginner, intermediate, advanced or expert"),
		field.JSON("recommendations", []string{}),
		field.Bool("passed"),
		field.String("trigger").
			Comment("manual or expired"),
		field.Bool("fallback").
			Default(false).
			Comment("Whether the fixed fallback outcome was used"),
	}
}

func (ResultEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id").Unique(),
		index.Fields("assessment_id"),
		index.Fields("skill_id"),
	}
}
