package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteWriter persists cleaned tables to a local SQLite database file.
type SQLiteWriter struct {
	*sqlTableWriter
}

var sqliteDialect = dialect{
	name:        "sqlite",
	placeholder: func(int) string { return "?" },
	quoteIdent:  doubleQuote,
	numberType:  "REAL",
	boolType:    "BOOLEAN",
	textType:    "TEXT",
}

// NewSQLiteWriter opens (creating if needed) the database at path.
func NewSQLiteWriter(ctx context.Context, path, runID string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// a single connection serialises writers on the one database file
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping %q: %w", path, err)
	}

	return &SQLiteWriter{&sqlTableWriter{db: db, d: sqliteDialect, runID: runID}}, nil
}
