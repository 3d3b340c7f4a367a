package sqlitestore

import "database/sql"

// schema runs on every open; it only creates what is missing.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
