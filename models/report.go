package models

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryPrice holds selling price statistics for one brand category.
type CategoryPrice struct {
	Category BrandCategory `json:"category"`
	Mean     float64       `json:"mean"`
	Median   float64       `json:"median"`
	Count    int           `json:"count"`
}

// StateShare is the luxury penetration of one state.
type StateShare struct {
	State  string  `json:"state"`
	Luxury int     `json:"luxury"`
	Total  int     `json:"total"`
	Share  float64 `json:"share_pct"`
}

// YearlyPrice is the average selling price of one make in one model year.
type YearlyPrice struct {
	Year int     `json:"year"`
	Make string  `json:"make"`
	Mean float64 `json:"mean"`
}

// HorsepowerStats summarises engine horsepower for one make.
type HorsepowerStats struct {
	Make   string  `json:"make"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SpecPoint positions one specification row on horsepower against MSRP.
type SpecPoint struct {
	Make       string  `json:"make"`
	Horsepower float64 `json:"horsepower"`
	MSRP       float64 `json:"msrp"`
}

// SalesSummary holds the computed analytics over the cleaned sales table.
type SalesSummary struct {
	TotalRows        int             `json:"total_rows"`
	LuxuryCount      int             `json:"luxury_count"`
	LuxuryShare      float64         `json:"luxury_share_pct"`
	AveragePrice     float64         `json:"average_price"`
	AverageLuxury    float64         `json:"average_luxury_price"`
	LuxuryPremium    float64         `json:"luxury_premium"`
	LuxuryPremiumPct float64         `json:"luxury_premium_pct"`
	TopMakes         []ValueCount    `json:"top_makes"`
	GermanTotal      int             `json:"german_total"`
	GermanByMake     []ValueCount    `json:"german_by_make"`
	GermanShare      float64         `json:"german_share_pct"`
	GermanAverageAge float64         `json:"german_average_age"`
	GermanYearly     []YearlyPrice   `json:"german_yearly"`
	TopStates        []ValueCount    `json:"top_states"`
	LuxuryByState    []StateShare    `json:"luxury_by_state"`
	PriceByCategory  []CategoryPrice `json:"price_by_category"`
	CategoryCounts   []ValueCount    `json:"category_counts"`
}

// SpecsSummary holds the computed analytics over the cleaned specifications table.
type SpecsSummary struct {
	TotalRows        int               `json:"total_rows"`
	LuxuryCount      int               `json:"luxury_count"`
	PerformanceCount int               `json:"performance_count"`
	LuxuryCatCount   int               `json:"luxury_category_count"`
	GermanHorsepower []HorsepowerStats `json:"german_horsepower"`
	GermanPoints     []SpecPoint       `json:"german_points"`
}

// InsightReport bundles both summaries. Either side is nil when its table is unavailable.
type InsightReport struct {
	Sales *SalesSummary `json:"sales,omitempty"`
	Specs *SpecsSummary `json:"specs,omitempty"`
}

// ColumnProfile describes one column of a raw dataset.
type ColumnProfile struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Missing int    `json:"missing"`
}

// DatasetProfile is the exploration result for one raw CSV file.
type DatasetProfile struct {
	Path        string          `json:"path"`
	Rows        int             `json:"rows"`
	Columns     []ColumnProfile `json:"columns"`
	Head        [][]string      `json:"head"`
	MakeColumn  string          `json:"make_column,omitempty"`
	UniqueMakes int             `json:"unique_makes,omitempty"`
	TopMakes    []ValueCount    `json:"top_makes,omitempty"`
}
