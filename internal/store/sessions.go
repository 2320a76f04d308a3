package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/knowtest/internal/session"
)

// Save upserts the snapshot for name.
func (s *Store) Save(ctx context.Context, name string, snap *session.Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	now := time.Now().UTC()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns("name", "data", "topic_index", "topic_count", "created_at", "updated_at").
		Values(name, string(data), snap.TopicIndex, len(snap.Topics), now, now).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("data")
				u.SetExcluded("topic_index")
				u.SetExcluded("topic_count")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the snapshot for name, session.ErrNotFound when absent, or a
// *session.PersistenceError when the stored data cannot be decoded.
func (s *Store) Load(ctx context.Context, name string) (*session.Snapshot, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("name", name)).
		Query()

	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: err}
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, &session.PersistenceError{Op: "load", Name: name, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	return &snap, nil
}

// List returns every saved session, most recently updated first.
func (s *Store) List(ctx context.Context) ([]SessionInfo, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("name", "topic_index", "topic_count", "updated_at").
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("updated_at")).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.Name, &info.TopicIndex, &info.TopicCount, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes the session and its answer events.
func (s *Store) Delete(ctx context.Context, name string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(sessionsTable).
		Where(entsql.EQ("name", name)).
		Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return session.ErrNotFound
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(answerEventsTable).
		Where(entsql.EQ("test_name", name)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete answer events: %w", err)
	}
	return nil
}
