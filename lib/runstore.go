package lib

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"
)

// RunStore keeps a history of golden test runs in Postgres.
type RunStore struct {
	db    *sql.DB
	table string
}

type StoredRun struct {
	ID        string
	Script    string
	Passed    bool
	ElapsedMS int64
	Output    string
	Error     string
	At        time.Time
}

// OpenRunStore connects to Postgres and creates the runs table if needed.
func OpenRunStore(ctx context.Context, connectionString string, table string) (*RunStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store := &RunStore{db: db, table: table}
	if err := store.requireRunsTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) requireRunsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createRunsTableSQL(s.table))
	return describePQError(err)
}

func createRunsTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	script TEXT NOT NULL,
	passed BOOLEAN NOT NULL,
	elapsed_ms BIGINT NOT NULL,
	output TEXT NOT NULL,
	error TEXT NOT NULL,
	at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
)`, pq.QuoteIdentifier(table))
}

// Record stores a result and returns the id it was given.
func (s *RunStore) Record(ctx context.Context, result Result) (string, error) {
	id := uuid.NewV4().String()
	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, script, passed, elapsed_ms, output, error) VALUES ($1, $2, $3, $4, $5, $6)",
		pq.QuoteIdentifier(s.table))
	_, err := s.db.ExecContext(ctx, query,
		id,
		result.Script.Name,
		result.Passed,
		int64(result.Elapsed/time.Millisecond),
		result.Output,
		errText)
	if err != nil {
		return "", describePQError(err)
	}
	return id, nil
}

// Recent returns up to limit runs of a script, newest first.
func (s *RunStore) Recent(ctx context.Context, script string, limit int) ([]StoredRun, error) {
	query := fmt.Sprintf(
		"SELECT id, script, passed, elapsed_ms, output, error, at FROM %s WHERE script = $1 ORDER BY at DESC LIMIT $2",
		pq.QuoteIdentifier(s.table))
	rows, err := s.db.QueryContext(ctx, query, script, limit)
	if err != nil {
		return nil, describePQError(err)
	}
	defer rows.Close()

	runs := []StoredRun{}
	for rows.Next() {
		var r StoredRun
		if err := rows.Scan(&r.ID, &r.Script, &r.Passed, &r.ElapsedMS, &r.Output, &r.Error, &r.At); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func describePQError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("Postgres error %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
	}
	return err
}
