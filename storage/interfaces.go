package storage

import (
	"context"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// TableWriter is the interface any storage backend for cleaned tables must satisfy.
// Write fully replaces whatever the backend previously held for the table.
type TableWriter interface {
	Name() string
	Write(ctx context.Context, t *models.Table) error
	Close() error
}
