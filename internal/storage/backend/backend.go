// Package backend opens the configured storage.GroupStore implementation.
package backend

import (
	"context"
	"fmt"

	"github.com/mmynk/attendance/internal/storage"
	"github.com/mmynk/attendance/internal/storage/postgres"
	"github.com/mmynk/attendance/internal/storage/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open returns the store for driver, connected to dsn. For SQLite the dsn is
// a file path.
func Open(ctx context.Context, driver, dsn string) (storage.GroupStore, error) {
	switch driver {
	case DriverSQLite, "":
		store, err := sqlite.New(dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		store, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
