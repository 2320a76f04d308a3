package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// AnswerEventData captures one accepted action in a test run.
type AnswerEventData struct {
	RunID      string
	TestName   string
	Topic      string
	Level      int
	QuestionID string
	Outcome    string
	Verdict    string
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	ID        int
	Timestamp time.Time
	AnswerEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// EventRepo is the append-only answer log.
type EventRepo interface {
	// AppendAnswerEvent records one answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryAnswerEvents returns the events of a test, newest first.
	QueryAnswerEvents(ctx context.Context, testName string, opts QueryOpts) ([]AnswerEvent, error)

	// TopicAccuracy returns the fraction of correct answers for a topic
	// across all runs of a test, and the number of answers it is based on.
	TopicAccuracy(ctx context.Context, testName, topic string) (float64, int, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventsTable).
		Columns("run_id", "test_name", "topic", "level", "question_id", "outcome", "verdict", "created_at").
		Values(data.RunID, data.TestName, data.Topic, data.Level, data.QuestionID, data.Outcome, data.Verdict, time.Now().UTC()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, testName string, opts QueryOpts) ([]AnswerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "run_id", "test_name", "topic", "level", "question_id", "outcome", "verdict", "created_at").
		From(entsql.Table(answerEventsTable)).
		Where(entsql.EQ("test_name", testName)).
		OrderBy(entsql.Desc("id"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		if err := rows.Scan(&e.ID, &e.RunID, &e.TestName, &e.Topic, &e.Level, &e.QuestionID, &e.Outcome, &e.Verdict, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) TopicAccuracy(ctx context.Context, testName, topic string) (float64, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("outcome").
		From(entsql.Table(answerEventsTable)).
		Where(entsql.And(
			entsql.EQ("test_name", testName),
			entsql.EQ("topic", topic),
			entsql.NEQ("outcome", "skipped"),
		)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("query topic accuracy: %w", err)
	}
	defer rows.Close()

	var total, correct int
	for rows.Next() {
		var outcome string
		if err := rows.Scan(&outcome); err != nil {
			return 0, 0, fmt.Errorf("scan outcome: %w", err)
		}
		total++
		if outcome == "correct" {
			correct++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(correct) / float64(total), total, nil
}
