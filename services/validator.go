package services

import (
	"fmt"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// Constraint is a row predicate over a single column. A row is kept only when
// Check returns true for the row's value in Column.
type Constraint struct {
	Column string
	Name   string
	Check  func(v models.Value) bool
}

// Required keeps rows whose value in column is present.
func Required(column string) Constraint {
	return Constraint{
		Column: column,
		Name:   fmt.Sprintf("%s not null", column),
		Check:  func(v models.Value) bool { return !v.IsNull() },
	}
}

// Between keeps rows whose numeric value lies in [lo, hi].
func Between(column string, lo, hi float64) Constraint {
	return Constraint{
		Column: column,
		Name:   fmt.Sprintf("%g <= %s <= %g", lo, column, hi),
		Check: func(v models.Value) bool {
			f, ok := v.AsFloat()
			return ok && f >= lo && f <= hi
		},
	}
}

// AtLeast keeps rows whose numeric value is >= min.
func AtLeast(column string, min float64) Constraint {
	return Constraint{
		Column: column,
		Name:   fmt.Sprintf("%s >= %g", column, min),
		Check: func(v models.Value) bool {
			f, ok := v.AsFloat()
			return ok && f >= min
		},
	}
}

// Stage groups constraints applied together; its name shows up in progress events.
type Stage struct {
	Name        string
	Constraints []Constraint
}

// Validator drops rows failing completeness or range constraints.
type Validator struct {
	observer Observer
}

// NewValidator creates a Validator reporting to observer, which may be nil.
func NewValidator(observer Observer) *Validator {
	return &Validator{observer: orNop(observer)}
}

// Apply checks that every constrained column exists, then runs the stages in order.
// The input table is not modified. An empty result is not an error.
func (v *Validator) Apply(dataset string, t *models.Table, stages []Stage) (*models.Table, error) {
	for _, s := range stages {
		for _, c := range s.Constraints {
			if !t.Has(c.Column) {
				return nil, fmt.Errorf("%w: %q (stage %s)", models.ErrMissingColumn, c.Column, s.Name)
			}
		}
	}

	v.observer.Observe(StageEvent{Dataset: dataset, Stage: "loaded", Rows: t.Len()})

	out := t.Filter(func(models.Row) bool { return true })
	for _, s := range stages {
		constraints := s.Constraints
		out = out.Filter(func(r models.Row) bool {
			for _, c := range constraints {
				if !c.Check(r.Get(c.Column)) {
					return false
				}
			}
			return true
		})
		v.observer.Observe(StageEvent{Dataset: dataset, Stage: s.Name, Rows: out.Len()})
	}
	return out, nil
}
