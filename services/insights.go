package services

import (
	"sort"

	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/utils"
)

const (
	topMakes  = 10
	topStates = 10
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises both cleaned tables. Either table may be nil.
func (s *InsightService) Generate(sales, specs *models.Table) *models.InsightReport {
	report := &models.InsightReport{}
	if sales != nil {
		report.Sales = s.Sales(sales)
	}
	if specs != nil {
		report.Specs = s.Specs(specs)
	}
	return report
}

// Sales computes the sales analytics. Columns missing from t leave their section empty.
func (s *InsightService) Sales(t *models.Table) *models.SalesSummary {
	r := &models.SalesSummary{TotalRows: t.Len()}
	if t.Len() == 0 {
		return r
	}

	type yearMake struct {
		year int
		make string
	}
	var (
		prices, luxuryPrices []float64
		germanAges           []float64
		byCategory           = make(map[models.BrandCategory][]float64)
		germanMakes          = make(map[string]int)
		germanYearly         = make(map[yearMake][]float64)
		stateShares          = make(map[string]*models.StateShare)
	)
	hasState := t.Has("state")

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		price, priced := row.Get("sellingprice").AsFloat()
		luxury := isTrue(row.Get("is_luxury"))
		category := models.BrandCategory(textOf(row.Get("brand_category")))

		if luxury {
			r.LuxuryCount++
		}
		if priced {
			prices = append(prices, price)
			if luxury {
				luxuryPrices = append(luxuryPrices, price)
			}
			if category != "" {
				byCategory[category] = append(byCategory[category], price)
			}
		}

		if category == models.GermanLuxury {
			r.GermanTotal++
			brand := row.Get("make").Text()
			germanMakes[brand]++
			if age, ok := row.Get("vehicle_age").AsFloat(); ok {
				germanAges = append(germanAges, age)
			}
			if year, ok := row.Get("year").AsFloat(); ok && priced {
				key := yearMake{year: int(year), make: brand}
				germanYearly[key] = append(germanYearly[key], price)
			}
		}

		if hasState {
			if state := row.Get("state"); !state.IsNull() {
				ss, ok := stateShares[state.Text()]
				if !ok {
					ss = &models.StateShare{State: state.Text()}
					stateShares[state.Text()] = ss
				}
				ss.Total++
				if luxury {
					ss.Luxury++
				}
			}
		}
	}

	r.LuxuryShare = round2(float64(r.LuxuryCount) / float64(r.TotalRows) * 100)
	r.AveragePrice = round2(mean(prices))
	r.AverageLuxury = round2(mean(luxuryPrices))
	if r.AveragePrice > 0 && len(luxuryPrices) > 0 {
		r.LuxuryPremium = round2(mean(luxuryPrices) - mean(prices))
		r.LuxuryPremiumPct = round2((mean(luxuryPrices)/mean(prices) - 1) * 100)
	}

	r.TopMakes = head(valueCounts(t, "make"), topMakes)
	r.CategoryCounts = valueCounts(t, "brand_category")

	r.GermanByMake = sortCounts(germanMakes)
	r.GermanShare = round2(float64(r.GermanTotal) / float64(r.TotalRows) * 100)
	r.GermanAverageAge = round2(mean(germanAges))
	for key, ps := range germanYearly {
		r.GermanYearly = append(r.GermanYearly, models.YearlyPrice{Year: key.year, Make: key.make, Mean: round2(mean(ps))})
	}
	sort.Slice(r.GermanYearly, func(i, j int) bool {
		a, b := r.GermanYearly[i], r.GermanYearly[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Make < b.Make
	})

	if hasState {
		r.TopStates = head(valueCounts(t, "state"), topStates)
		for _, ss := range stateShares {
			ss.Share = round2(float64(ss.Luxury) / float64(ss.Total) * 100)
			r.LuxuryByState = append(r.LuxuryByState, *ss)
		}
		sort.Slice(r.LuxuryByState, func(i, j int) bool {
			a, b := r.LuxuryByState[i], r.LuxuryByState[j]
			if a.Share != b.Share {
				return a.Share > b.Share
			}
			return a.State < b.State
		})
		r.LuxuryByState = head(r.LuxuryByState, topStates)
	}

	for category, ps := range byCategory {
		r.PriceByCategory = append(r.PriceByCategory, models.CategoryPrice{
			Category: category,
			Mean:     round2(mean(ps)),
			Median:   round2(median(ps)),
			Count:    len(ps),
		})
	}
	sort.Slice(r.PriceByCategory, func(i, j int) bool {
		a, b := r.PriceByCategory[i], r.PriceByCategory[j]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Category < b.Category
	})

	s.logger.Debug("[insights] sales summary over %d rows", r.TotalRows)
	return r
}

// Specs computes the specification analytics.
func (s *InsightService) Specs(t *models.Table) *models.SpecsSummary {
	r := &models.SpecsSummary{TotalRows: t.Len()}
	horsepower := make(map[string][]float64)

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		if isTrue(row.Get("is_luxury")) {
			r.LuxuryCount++
		}
		if isTrue(row.Get("is_performance")) {
			r.PerformanceCount++
		}
		if isTrue(row.Get("is_luxury_cat")) {
			r.LuxuryCatCount++
		}

		if models.BrandCategory(textOf(row.Get("brand_category"))) != models.GermanLuxury {
			continue
		}
		brand := row.Get("Make").Text()
		hp, ok := row.Get("Engine HP").AsFloat()
		if !ok {
			continue
		}
		horsepower[brand] = append(horsepower[brand], hp)
		if msrp, ok := row.Get("MSRP").AsFloat(); ok {
			r.GermanPoints = append(r.GermanPoints, models.SpecPoint{Make: brand, Horsepower: hp, MSRP: msrp})
		}
	}

	for brand, hps := range horsepower {
		sorted := make([]float64, len(hps))
		copy(sorted, hps)
		sort.Float64s(sorted)
		r.GermanHorsepower = append(r.GermanHorsepower, models.HorsepowerStats{
			Make:   brand,
			Count:  len(hps),
			Mean:   round2(mean(hps)),
			Median: round2(median(hps)),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
		})
	}
	sort.Slice(r.GermanHorsepower, func(i, j int) bool {
		return r.GermanHorsepower[i].Make < r.GermanHorsepower[j].Make
	})

	s.logger.Debug("[insights] specs summary over %d rows", r.TotalRows)
	return r
}
