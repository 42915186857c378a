package services

import (
	"fmt"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// Derivation computes one derived column from existing columns of a row.
type Derivation struct {
	Column string
	// Inputs lists the columns Derive reads; they must exist in the table.
	Inputs []string
	Derive func(r models.Row) models.Value
}

// Categorizer appends derived columns to a filtered table.
type Categorizer struct {
	observer Observer
}

// NewCategorizer creates a Categorizer reporting to observer, which may be nil.
func NewCategorizer(observer Observer) *Categorizer {
	return &Categorizer{observer: orNop(observer)}
}

// Apply adds every derivation as a column, in order, modifying t in place.
func (c *Categorizer) Apply(dataset string, t *models.Table, derivations []Derivation) error {
	for _, d := range derivations {
		for _, in := range d.Inputs {
			if !t.Has(in) {
				return fmt.Errorf("%w: %q (derived column %s)", models.ErrMissingColumn, in, d.Column)
			}
		}
	}
	for _, d := range derivations {
		t.SetColumn(d.Column, d.Derive)
	}
	c.observer.Observe(StageEvent{Dataset: dataset, Stage: "categorized", Rows: t.Len()})
	return nil
}

func textOf(v models.Value) string {
	s, _ := v.AsString()
	return s
}

// LuxuryFlag derives is_luxury from the brand column.
func LuxuryFlag(brandColumn string) Derivation {
	return Derivation{
		Column: "is_luxury",
		Inputs: []string{brandColumn},
		Derive: func(r models.Row) models.Value {
			return models.Bool(IsLuxuryBrand(textOf(r.Get(brandColumn))))
		},
	}
}

// BrandCategory derives brand_category from the brand column.
func BrandCategory(brandColumn string) Derivation {
	return Derivation{
		Column: "brand_category",
		Inputs: []string{brandColumn},
		Derive: func(r models.Row) models.Value {
			return models.String(string(ClassifyBrand(textOf(r.Get(brandColumn)))))
		},
	}
}

// VehicleAge derives vehicle_age as referenceYear minus the model year.
func VehicleAge(yearColumn string, referenceYear int) Derivation {
	return Derivation{
		Column: "vehicle_age",
		Inputs: []string{yearColumn},
		Derive: func(r models.Row) models.Value {
			year, ok := r.Get(yearColumn).AsFloat()
			if !ok {
				return models.Null()
			}
			return models.Number(float64(referenceYear) - year)
		},
	}
}

// TagFlag derives a boolean column from a substring match over a tag column.
// A missing tag reads as the empty string.
func TagFlag(column, tagColumn string, match func(string) bool) Derivation {
	return Derivation{
		Column: column,
		Inputs: []string{tagColumn},
		Derive: func(r models.Row) models.Value {
			return models.Bool(match(r.Get(tagColumn).Text()))
		},
	}
}
