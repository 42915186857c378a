package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func TestValidatorSalesStages(t *testing.T) {
	var events []StageEvent
	v := NewValidator(ObserverFunc(func(ev StageEvent) { events = append(events, ev) }))
	raw := parseTable(t, "car_prices", salesCSV)

	out, err := v.Apply("sales", raw, SalesDataset(2024).Stages)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Len())
	assert.Equal(t, 9, raw.Len(), "input table must not change")
	assert.Equal(t, []StageEvent{
		{Dataset: "sales", Stage: "loaded", Rows: 9},
		{Dataset: "sales", Stage: "drop_missing", Rows: 7},
		{Dataset: "sales", Stage: "price_range", Rows: 5},
		{Dataset: "sales", Stage: "year_range", Rows: 4},
	}, events)

	for i := 0; i < out.Len(); i++ {
		row := out.Row(i)
		price, ok := row.Get("sellingprice").AsFloat()
		require.True(t, ok)
		assert.GreaterOrEqual(t, price, 1000.0)
		assert.LessOrEqual(t, price, 200000.0)
		year, ok := row.Get("year").AsFloat()
		require.True(t, ok)
		assert.GreaterOrEqual(t, year, 2000.0)
		assert.False(t, row.Get("make").IsNull())
	}
}

func TestValidatorFiltersCommute(t *testing.T) {
	raw := parseTable(t, "car_prices", salesCSV)
	stages := SalesDataset(2024).Stages
	reversed := []Stage{stages[2], stages[1], stages[0]}

	a, err := NewValidator(nil).Apply("sales", raw, stages)
	require.NoError(t, err)
	b, err := NewValidator(nil).Apply("sales", raw, reversed)
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Row(i).Texts(), b.Row(i).Texts())
	}
}

func TestValidatorBoundsAreInclusive(t *testing.T) {
	raw := parseTable(t, "prices", "sellingprice,year\n1000,2000\n200000,2000\n999.99,2000\n200000.01,2000\n")

	out, err := NewValidator(nil).Apply("sales", raw, []Stage{
		{Name: "price_range", Constraints: []Constraint{Between("sellingprice", 1000, 200000)}},
		{Name: "year_range", Constraints: []Constraint{AtLeast("year", 2000)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Len())
}

func TestValidatorSpecsBoundsAreInclusive(t *testing.T) {
	raw := parseTable(t, "data", "Make,MSRP,Engine HP,Year\n"+
		"A,10000,200,2010\nB,300000,200,2010\nC,9999.99,200,2010\nD,300000.01,200,2010\n")

	out, err := NewValidator(nil).Apply("specs", raw, SpecsDataset().Stages)
	require.NoError(t, err)

	var kept []string
	for i := 0; i < out.Len(); i++ {
		kept = append(kept, out.Row(i).Get("Make").Text())
	}
	assert.Equal(t, []string{"A", "B"}, kept)
}

func TestValidatorNonNumericValuesAreDropped(t *testing.T) {
	raw := parseTable(t, "prices", "sellingprice\n5000\ncall dealer\n")

	out, err := NewValidator(nil).Apply("sales", raw, []Stage{
		{Name: "price_range", Constraints: []Constraint{Between("sellingprice", 1000, 200000)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestValidatorMissingColumn(t *testing.T) {
	raw := parseTable(t, "car_prices", "make,year\nBMW,2018\n")
	observed := 0

	_, err := NewValidator(ObserverFunc(func(StageEvent) { observed++ })).Apply("sales", raw, SalesDataset(2024).Stages)

	assert.ErrorIs(t, err, models.ErrMissingColumn)
	assert.Contains(t, err.Error(), "sellingprice")
	assert.Zero(t, observed, "no stage should run when the schema is incomplete")
}

func TestValidatorEmptyResultIsNotAnError(t *testing.T) {
	raw := parseTable(t, "car_prices", "make,sellingprice,year\nToyota,500,2015\n")

	out, err := NewValidator(nil).Apply("sales", raw, SalesDataset(2024).Stages)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, raw.Columns(), out.Columns())
}
