package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func sampleTable(t *testing.T) *models.Table {
	t.Helper()
	tbl, err := models.NewTable("sales_cleaned", []string{"make", "sellingprice", "note"})
	require.NoError(t, err)
	require.NoError(t, tbl.Append([]models.Value{
		models.String("BMW"), models.NumberText(45000, "45000"), models.String("one, two"),
	}))
	require.NoError(t, tbl.Append([]models.Value{
		models.String("Audi"), models.Number(31000.5), models.Null(),
	}))
	tbl.SetColumn("is_luxury", func(models.Row) models.Value { return models.Bool(true) })
	return tbl
}

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sales_cleaned.csv")
	w := NewCSVWriter(path)

	require.NoError(t, w.Write(context.Background(), sampleTable(t)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "make,sellingprice,note,is_luxury\n" +
		"BMW,45000,\"one, two\",True\n" +
		"Audi,31000.5,,True\n"
	assert.Equal(t, want, string(got))
}

func TestCSVWriterOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales_cleaned.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new file\n"), 0644))

	tbl, err := models.NewTable("t", []string{"a"})
	require.NoError(t, err)
	require.NoError(t, NewCSVWriter(path).Write(context.Background(), tbl))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestCSVWriterUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(filepath.Join(blocker, "out.csv")).Write(context.Background(), sampleTable(t))
	assert.ErrorIs(t, err, models.ErrWriteError)
}

func TestCSVRoundTripIsStable(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	require.NoError(t, NewCSVWriter(first).Write(context.Background(), sampleTable(t)))
	tbl, err := ReadCSV(first)
	require.NoError(t, err)
	require.NoError(t, NewCSVWriter(second).Write(context.Background(), tbl))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
