package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	source TEXT NOT NULL,
	format TEXT NOT NULL,
	output TEXT NOT NULL,
	strict BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS bindings (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	logical TEXT NOT NULL,
	target INTEGER NOT NULL,
	alt_pin BOOLEAN NOT NULL,
	bank TEXT NOT NULL,
	pin INTEGER NOT NULL,
	irq INTEGER NOT NULL,
	remap INTEGER NOT NULL,
	dma BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, logical)
);
`

// Open opens (creating if needed) the manifest database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := ApplySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ApplySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
