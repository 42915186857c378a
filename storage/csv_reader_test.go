package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSVInfersKinds(t *testing.T) {
	path := writeFile(t, "car_prices.csv",
		"year,make,sellingprice,is_luxury,state\n"+
			"2018,BMW,45000,True,ca\n"+
			"2015,Toyota,,False,tx\n"+
			"2012,,9000.50,,NA\n")

	tbl, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "car_prices", tbl.Name)
	assert.Equal(t, []string{"year", "make", "sellingprice", "is_luxury", "state"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Len())

	assert.Equal(t, models.KindNumber, tbl.ColumnKind("year"))
	assert.Equal(t, models.KindString, tbl.ColumnKind("make"))
	assert.Equal(t, models.KindNumber, tbl.ColumnKind("sellingprice"))
	assert.Equal(t, models.KindBool, tbl.ColumnKind("is_luxury"))

	second := tbl.Row(1)
	assert.True(t, second.Get("sellingprice").IsNull())
	lux, ok := second.Get("is_luxury").AsBool()
	assert.True(t, ok)
	assert.False(t, lux)

	third := tbl.Row(2)
	assert.True(t, third.Get("make").IsNull())
	assert.True(t, third.Get("state").IsNull())
	price, ok := third.Get("sellingprice").AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 9000.5, price)
	assert.Equal(t, "9000.50", third.Get("sellingprice").Text())
}

func TestReadCSVMixedColumn(t *testing.T) {
	const content = "trim,sellingprice\n300,45000\nSE,n.a.\n"

	t.Run("inferred", func(t *testing.T) {
		tbl, err := ParseCSV("mixed", strings.NewReader(content))
		require.NoError(t, err)

		v, ok := tbl.Row(0).Get("trim").AsString()
		assert.True(t, ok)
		assert.Equal(t, "300", v)
		assert.Equal(t, models.KindString, tbl.ColumnKind("sellingprice"))
	})

	t.Run("declared numeric", func(t *testing.T) {
		tbl, err := ParseCSV("mixed", strings.NewReader(content), "sellingprice")
		require.NoError(t, err)

		price, ok := tbl.Row(0).Get("sellingprice").AsFloat()
		assert.True(t, ok)
		assert.Equal(t, 45000.0, price)
		assert.True(t, tbl.Row(1).Get("sellingprice").IsNull())
		assert.Equal(t, models.KindString, tbl.ColumnKind("trim"))
	})
}

func TestReadCSVDeclaredNumericFromFile(t *testing.T) {
	path := writeFile(t, "data.csv", "Make,MSRP\nBMW,50000\nKia,TBD\n")

	tbl, err := ReadCSV(path, "MSRP", "Year")
	require.NoError(t, err)
	assert.Equal(t, "50000", tbl.Row(0).Get("MSRP").Text())
	assert.True(t, tbl.Row(1).Get("MSRP").IsNull())
	assert.False(t, tbl.Has("Year"))
}

func TestReadCSVStripsBOM(t *testing.T) {
	tbl, err := ParseCSV("bom", strings.NewReader("\ufeffMake,MSRP\nBMW,50000\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Has("Make"))
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty file", "", models.ErrMalformedInput},
		{"ragged rows", "a,b\n1,2\n3\n", models.ErrMalformedInput},
		{"duplicate header", "a,a\n1,2\n", models.ErrMalformedInput},
		{"bad quoting", "a,b\n\"1,2\n", models.ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "in.csv", tt.content)
			_, err := ReadCSV(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, models.ErrFileNotFound)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tbl, err := ParseCSV("empty", strings.NewReader("make,year\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"make", "year"}, tbl.Columns())
}
