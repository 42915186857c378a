package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	bytes.Buffer
	syncs int
}

func (b *syncBuffer) Sync() error {
	b.syncs++
	return nil
}

func TestLoggerFiltersByLevel(t *testing.T) {
	buf := &syncBuffer{}
	logger := NewLoggerTo(buf, "warn")

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	logger.With("run_id", "abc").Error("failed at %s", "load")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "failed at load")
	assert.Contains(t, out, "abc")
}

func TestLoggerSyncReachesWriter(t *testing.T) {
	buf := &syncBuffer{}
	require.NoError(t, NewLoggerTo(buf, "info").Sync())
	assert.Equal(t, 1, buf.syncs)
}
