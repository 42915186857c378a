package services

// Dataset names as reported in logs, events and errors.
const (
	SalesDatasetName = "sales"
	SpecsDatasetName = "specs"
)

// Dataset binds one input schema to its validation stages and derived columns.
type Dataset struct {
	// Name identifies the dataset in logs and errors.
	Name string
	// Table is the name given to the cleaned table in SQL exports.
	Table string
	// Numeric columns are read as numbers cell by cell; unparseable cells become null.
	Numeric     []string
	Stages      []Stage
	Derivations []Derivation
}

// SalesDataset describes car_prices.csv. vehicle_age is measured against referenceYear.
func SalesDataset(referenceYear int) Dataset {
	return Dataset{
		Name:    SalesDatasetName,
		Table:   "sales_cleaned",
		Numeric: []string{"year", "sellingprice"},
		Stages: []Stage{
			{Name: "drop_missing", Constraints: []Constraint{
				Required("make"), Required("sellingprice"), Required("year"),
			}},
			{Name: "price_range", Constraints: []Constraint{Between("sellingprice", 1000, 200000)}},
			{Name: "year_range", Constraints: []Constraint{AtLeast("year", 2000)}},
		},
		Derivations: []Derivation{
			LuxuryFlag("make"),
			BrandCategory("make"),
			VehicleAge("year", referenceYear),
		},
	}
}

// SpecsDataset describes data.csv.
func SpecsDataset() Dataset {
	return Dataset{
		Name:    SpecsDatasetName,
		Table:   "specs_cleaned",
		Numeric: []string{"Year", "Engine HP", "MSRP"},
		Stages: []Stage{
			{Name: "drop_missing", Constraints: []Constraint{
				Required("Make"), Required("MSRP"), Required("Engine HP"),
			}},
			{Name: "msrp_range", Constraints: []Constraint{Between("MSRP", 10000, 300000)}},
			{Name: "year_range", Constraints: []Constraint{AtLeast("Year", 2000)}},
		},
		Derivations: []Derivation{
			LuxuryFlag("Make"),
			BrandCategory("Make"),
			TagFlag("is_performance", "Market Category", IsPerformanceTag),
			TagFlag("is_luxury_cat", "Market Category", IsLuxuryTag),
		},
	}
}

// RequiredColumns lists every input column the stages and derivations read, in first-use order.
func (d Dataset) RequiredColumns() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(c string) {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, s := range d.Stages {
		for _, c := range s.Constraints {
			add(c.Column)
		}
	}
	for _, dv := range d.Derivations {
		for _, in := range dv.Inputs {
			add(in)
		}
	}
	return out
}
