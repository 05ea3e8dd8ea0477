package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/attendance/internal/models"
	"github.com/mmynk/attendance/internal/storage"
)

// timeLayout is fixed-width so that updated_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectGroupColumns = "SELECT group_name, people, dates, attendance_data, updated_at FROM groups"

// ListGroups returns every group row, most recently updated first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.GroupRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectGroupColumns+" ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.GroupRecord
	for rows.Next() {
		record, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// GetGroup retrieves a group row by name.
func (s *SQLiteStore) GetGroup(ctx context.Context, name string) (*models.GroupRecord, error) {
	row := s.db.QueryRowContext(ctx, selectGroupColumns+" WHERE group_name = ?", name)
	record, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrGroupNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ReplaceGroup deletes the row of the group and inserts the new record.
func (s *SQLiteStore) ReplaceGroup(ctx context.Context, record *models.GroupRecord) error {
	cols, err := storage.EncodeColumns(record)
	if err != nil {
		return err
	}
	record.UpdatedAt = s.now().UTC()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE group_name = ?", record.GroupName); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO groups (group_name, people, dates, attendance_data, updated_at) VALUES (?, ?, ?, ?, ?)",
		record.GroupName, cols.People, cols.Dates, cols.Attendance, record.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	return nil
}

// DeleteGroup removes the row of a group.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE group_name = ?", name); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.GroupRecord, error) {
	var (
		name    string
		cols    storage.Columns
		updated string
	)
	if err := row.Scan(&name, &cols.People, &cols.Dates, &cols.Attendance, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}

	updatedAt, err := time.Parse(timeLayout, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at of %q: %w", name, err)
	}
	return storage.DecodeRecord(name, cols, updatedAt)
}
