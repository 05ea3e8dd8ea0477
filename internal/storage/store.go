// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/attendance/internal/models"
)

// ErrGroupNotFound is returned when no row exists for a group name.
var ErrGroupNotFound = errors.New("group not found")

// GroupStore defines the interface for group record storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the sync layer.
//
// There is exactly one row per group name. Saving replaces the row.
type GroupStore interface {
	// ListGroups returns every stored group, most recently updated first.
	ListGroups(ctx context.Context) ([]*models.GroupRecord, error)

	// GetGroup retrieves one group by name.
	// Returns ErrGroupNotFound if no row exists.
	GetGroup(ctx context.Context, name string) (*models.GroupRecord, error)

	// ReplaceGroup deletes the row for record.GroupName and inserts record.
	// The two steps are not atomic. UpdatedAt is set by the store.
	ReplaceGroup(ctx context.Context, record *models.GroupRecord) error

	// DeleteGroup removes the row for a group. Missing rows are not an error.
	DeleteGroup(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}
