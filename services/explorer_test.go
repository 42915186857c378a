package services

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func TestExplorerProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "car_prices.csv", salesCSV)

	p, err := NewExplorer(newTestLogger()).Profile(path)
	require.NoError(t, err)

	assert.Equal(t, 9, p.Rows)
	require.Len(t, p.Columns, 5)
	assert.Equal(t, models.ColumnProfile{Name: "make", Kind: models.KindString, Missing: 1}, p.Columns[1])
	assert.Equal(t, models.ColumnProfile{Name: "sellingprice", Kind: models.KindNumber, Missing: 1}, p.Columns[4])
	assert.Len(t, p.Head, 5)

	assert.Equal(t, "make", p.MakeColumn)
	assert.Equal(t, 7, p.UniqueMakes)
	assert.Equal(t, models.ValueCount{Name: "Lexus", Count: 2}, p.TopMakes[0])
}

func TestExplorerProfileMissingFile(t *testing.T) {
	_, err := NewExplorer(newTestLogger()).Profile(filepath.Join(t.TempDir(), "data.csv"))
	assert.ErrorIs(t, err, models.ErrFileNotFound)
}

func TestExplorerWithoutBrandColumn(t *testing.T) {
	p := NewExplorer(newTestLogger()).ProfileTable("x.csv", parseTable(t, "x", "a,b\n1,\n"))

	assert.Empty(t, p.MakeColumn)
	assert.Nil(t, p.TopMakes)

	var buf bytes.Buffer
	NewExplorer(newTestLogger()).Print(&buf, p)
	assert.Contains(t, buf.String(), "Missing values")
}

func TestBrandColumn(t *testing.T) {
	assert.Equal(t, "Make", brandColumn([]string{"Year", "Make", "Model"}))
	assert.Equal(t, "vehicle_brand", brandColumn([]string{"vin", "vehicle_brand"}))
	assert.Equal(t, "", brandColumn([]string{"vin", "model"}))
}
