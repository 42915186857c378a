package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

const batchSize = 50

// dialect captures the differences between the SQL backends.
type dialect struct {
	name        string
	placeholder func(n int) string
	quoteIdent  func(s string) string
	numberType  string
	boolType    string
	textType    string
}

// sqlTableWriter replaces a table's content in a database/sql backend.
// Every row carries the run ID of the pipeline invocation that produced it.
type sqlTableWriter struct {
	db    *sql.DB
	d     dialect
	runID string
}

func (w *sqlTableWriter) Name() string { return w.d.name }

func (w *sqlTableWriter) Close() error {
	return w.db.Close()
}

func (w *sqlTableWriter) columnType(k models.Kind) string {
	switch k {
	case models.KindNumber:
		return w.d.numberType
	case models.KindBool:
		return w.d.boolType
	default:
		return w.d.textType
	}
}

// Write drops and recreates the table, then batch-inserts every row in one transaction.
func (w *sqlTableWriter) Write(ctx context.Context, t *models.Table) error {
	columns := t.Columns()
	table := w.d.quoteIdent(t.Name)

	defs := make([]string, 0, len(columns)+1)
	defs = append(defs, w.d.quoteIdent("run_id")+" "+w.d.textType+" NOT NULL")
	for _, c := range columns {
		defs = append(defs, w.d.quoteIdent(c)+" "+w.columnType(t.ColumnKind(c)))
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", w.d.name, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("%s: drop %s: %w", w.d.name, t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("%s: create %s: %w", w.d.name, t.Name, err)
	}

	for i := 0; i < t.Len(); i += batchSize {
		end := i + batchSize
		if end > t.Len() {
			end = t.Len()
		}
		if err := w.insertBatch(ctx, tx, t, i, end); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", w.d.name, err)
	}

	n, err := w.Count(ctx, t.Name)
	if err != nil {
		return err
	}
	if n != t.Len() {
		return fmt.Errorf("%s: %s holds %d rows after write, want %d", w.d.name, t.Name, n, t.Len())
	}
	return nil
}

func (w *sqlTableWriter) insertBatch(ctx context.Context, tx *sql.Tx, t *models.Table, start, end int) error {
	columns := t.Columns()
	width := len(columns) + 1

	quoted := make([]string, 0, width)
	quoted = append(quoted, w.d.quoteIdent("run_id"))
	for _, c := range columns {
		quoted = append(quoted, w.d.quoteIdent(c))
	}

	valueStrings := make([]string, 0, end-start)
	valueArgs := make([]any, 0, (end-start)*width)

	for idx := start; idx < end; idx++ {
		base := (idx - start) * width
		ph := make([]string, width)
		for j := range ph {
			ph[j] = w.d.placeholder(base + j + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		row := t.Row(idx)
		valueArgs = append(valueArgs, w.runID)
		for _, c := range columns {
			valueArgs = append(valueArgs, sqlArg(row.Get(c)))
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		w.d.quoteIdent(t.Name), strings.Join(quoted, ","), strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("%s: insert rows %d-%d into %s: %w", w.d.name, start+1, end, t.Name, err)
	}
	return nil
}

// Count returns the number of rows currently stored in the named table.
func (w *sqlTableWriter) Count(ctx context.Context, table string) (int, error) {
	var n int
	row := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+w.d.quoteIdent(table))
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count %s: %w", w.d.name, table, err)
	}
	return n, nil
}

func sqlArg(v models.Value) any {
	switch v.Kind() {
	case models.KindNumber:
		f, _ := v.AsFloat()
		return f
	case models.KindBool:
		b, _ := v.AsBool()
		return b
	case models.KindString:
		s, _ := v.AsString()
		return s
	default:
		return nil
	}
}

func doubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
