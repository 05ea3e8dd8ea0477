package sqlite

import "database/sql"

// schema sets up the groups table. It runs on startup to ensure the table exists.
// The collections are stored as JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    group_name TEXT PRIMARY KEY,
    people TEXT NOT NULL DEFAULT '[]',
    dates TEXT NOT NULL DEFAULT '[]',
    attendance_data TEXT NOT NULL DEFAULT '{}',
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_groups_updated_at ON groups(updated_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
