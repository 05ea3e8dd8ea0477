// Package postgres provides a PostgreSQL-backed implementation of the storage.GroupStore interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/storage"
)

// Ensure PostgresStore implements storage.GroupStore
var _ storage.GroupStore = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS groups (
    group_name TEXT PRIMARY KEY,
    people JSONB NOT NULL DEFAULT '[]',
    dates JSONB NOT NULL DEFAULT '[]',
    attendance_data JSONB NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_groups_updated_at ON groups(updated_at);
`

const selectGroupColumns = `SELECT group_name, people::text AS people, dates::text AS dates,
    attendance_data::text AS attendance_data, updated_at FROM groups`

// groupRow is the scanned shape of a groups row.
type groupRow struct {
	GroupName  string    `db:"group_name"`
	People     string    `db:"people"`
	Dates      string    `db:"dates"`
	Attendance string    `db:"attendance_data"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// PostgresStore implements storage.GroupStore using PostgreSQL.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// New connects to the database at dsn, waits for it to accept connections
// and creates the schema.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db, now: time.Now}, nil
}

// ping waits for the database to be ready, backing off a little more after each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	const maxAttempts = 10
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to ping database: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return fmt.Errorf("failed to ping database: %w", err)
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ListGroups returns every group row, most recently updated first.
func (s *PostgresStore) ListGroups(ctx context.Context) ([]*models.GroupRecord, error) {
	var rows []groupRow
	if err := s.db.SelectContext(ctx, &rows, selectGroupColumns+" ORDER BY updated_at DESC"); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]*models.GroupRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.record()
		if err != nil {
			return nil, err
		}
		groups = append(groups, record)
	}
	return groups, nil
}

// GetGroup retrieves a group row by name.
func (s *PostgresStore) GetGroup(ctx context.Context, name string) (*models.GroupRecord, error) {
	var row groupRow
	err := s.db.GetContext(ctx, &row, selectGroupColumns+" WHERE group_name = $1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrGroupNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return row.record()
}

// ReplaceGroup deletes the row of the group and inserts the new record.
func (s *PostgresStore) ReplaceGroup(ctx context.Context, record *models.GroupRecord) error {
	cols, err := storage.EncodeColumns(record)
	if err != nil {
		return err
	}
	record.UpdatedAt = s.now().UTC()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE group_name = $1", record.GroupName); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO groups (group_name, people, dates, attendance_data, updated_at)
		 VALUES ($1, $2::jsonb, $3::jsonb, $4::jsonb, $5)`,
		record.GroupName, cols.People, cols.Dates, cols.Attendance, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	return nil
}

// DeleteGroup removes the row of a group.
func (s *PostgresStore) DeleteGroup(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE group_name = $1", name); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (r groupRow) record() (*models.GroupRecord, error) {
	return storage.DecodeRecord(r.GroupName, storage.Columns{
		People:     r.People,
		Dates:      r.Dates,
		Attendance: r.Attendance,
	}, r.UpdatedAt.UTC())
}
