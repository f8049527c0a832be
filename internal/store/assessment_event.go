package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	return r.insert(ctx, TableAttemptEvents,
		[]string{"attempt_id", "assessment_id", "skill_id", "question_count", "time_limit_secs"},
		[]any{data.AttemptID, data.AssessmentID, data.SkillID, data.QuestionCount, int(data.TimeLimit / time.Second)},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, TableAnswerEvents,
		[]string{"attempt_id", "assessment_id", "question_id", "value"},
		[]any{data.AttemptID, data.AssessmentID, data.QuestionID, data.Value},
	)
}

func (r *eventRepo) AppendResultEvent(ctx context.Context, data ResultEventData) error {
	recs := data.Recommendations
	if recs == nil {
		recs = []string{}
	}
	recJSON, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	return r.insert(ctx, TableResultEvents,
		[]string{
			"attempt_id", "assessment_id", "assessment_name", "skill_id",
			"score", "passing_score", "total_questions", "correct_answers",
			"elapsed_secs", "proficiency", "recommendations", "passed",
			"trigger", "fallback",
		},
		[]any{
			data.AttemptID, data.AssessmentID, data.AssessmentName, data.SkillID,
			data.Score, data.PassingScore, data.TotalQuestions, data.CorrectAnswers,
			int(data.Elapsed / time.Second), data.Proficiency, string(recJSON), data.Passed,
			data.Trigger, data.Fallback,
		},
	)
}

func (r *eventRepo) QueryResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	query, args := selectEvents(TableResultEvents, opts,
		"id", "sequence", "timestamp",
		"attempt_id", "assessment_id", "assessment_name", "skill_id",
		"score", "passing_score", "total_questions", "correct_answers",
		"elapsed_secs", "proficiency", "recommendations", "passed",
		"trigger", "fallback",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec     ResultRecord
			elapsed int
			recJSON string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.AttemptID, &rec.AssessmentID, &rec.AssessmentName, &rec.SkillID,
			&rec.Score, &rec.PassingScore, &rec.TotalQuestions, &rec.CorrectAnswers,
			&elapsed, &rec.Proficiency, &recJSON, &rec.Passed,
			&rec.Trigger, &rec.Fallback,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Elapsed = time.Duration(elapsed) * time.Second
		if err := json.Unmarshal([]byte(recJSON), &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations for %s: %w", rec.AttemptID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) ResultStats(ctx context.Context) ([]ResultStats, error) {
	b := builder()
	query, args := b.Select(
		"assessment_id",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("passed"), "passed_count"),
		entsql.As(entsql.Max("score"), "best_score"),
		entsql.As(entsql.Avg("score"), "avg_score"),
		entsql.As(entsql.Max("sequence"), "last_seq"),
	).
		From(b.Table(TableResultEvents)).
		GroupBy("assessment_id").
		OrderBy(entsql.Desc("last_seq")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result stats: %w", err)
	}
	defer rows.Close()

	var out []ResultStats
	for rows.Next() {
		var (
			st      ResultStats
			lastSeq int64
		)
		if err := rows.Scan(&st.AssessmentID, &st.Attempts, &st.Passed, &st.BestScore, &st.AvgScore, &lastSeq); err != nil {
			return nil, fmt.Errorf("scan result stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) AnswersForAttempt(ctx context.Context, attemptID string) ([]AnswerRecord, error) {
	b := builder()
	query, args := b.Select("sequence", "timestamp", "question_id", "value").
		From(b.Table(TableAnswerEvents)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var (
		out   []AnswerRecord
		index = make(map[string]int)
	)
	for rows.Next() {
		var rec AnswerRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.QuestionID, &rec.Value); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		// Later answers overwrite earlier ones in place.
		if i, ok := index[rec.QuestionID]; ok {
			out[i] = rec
			continue
		}
		index[rec.QuestionID] = len(out)
		out = append(out, rec)
	}
	return out, rows.Err()
}
