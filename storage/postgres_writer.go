package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/andrrresj/automotive-market-dashboard/utils"
)

// PostgresWriter persists cleaned tables to PostgreSQL.
type PostgresWriter struct {
	*sqlTableWriter
}

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	quoteIdent:  pq.QuoteIdentifier,
	numberType:  "DOUBLE PRECISION",
	boolType:    "BOOLEAN",
	textType:    "TEXT",
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to accept
// connections and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn, runID string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{&sqlTableWriter{db: db, d: postgresDialect, runID: runID}}, nil
}
