package services

import (
	"regexp"
	"sort"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

// luxuryBrands is the single reference set behind both is_luxury and brand_category.
var luxuryBrands = map[string]struct{}{
	"Mercedes-Benz": {}, "BMW": {}, "Audi": {}, "Lexus": {}, "Porsche": {},
	"Cadillac": {}, "Lincoln": {}, "Infiniti": {}, "Acura": {}, "Jaguar": {},
	"Land Rover": {}, "Volvo": {}, "Tesla": {},
}

// categoryRules are checked in order; the first rule listing the brand wins.
var categoryRules = []struct {
	category models.BrandCategory
	brands   map[string]struct{}
}{
	{models.GermanLuxury, setOf("Mercedes-Benz", "BMW", "Audi")},
	{models.JapaneseLuxury, setOf("Lexus", "Infiniti", "Acura")},
	{models.AmericanLuxury, setOf("Cadillac", "Lincoln", "Tesla")},
}

var (
	// performanceRegexp flags Market Category tags describing performance cars
	performanceRegexp = regexp.MustCompile(`Performance|Exotic|High-Performance`)
	// luxuryTagRegexp flags Market Category tags describing luxury cars
	luxuryTagRegexp = regexp.MustCompile(`Luxury`)
)

func setOf(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// IsLuxuryBrand reports whether brand is in the luxury reference set.
// Matching is exact and case-sensitive.
func IsLuxuryBrand(brand string) bool {
	_, ok := luxuryBrands[brand]
	return ok
}

// ClassifyBrand maps a brand name to its market segment. Unknown brands are Mass Market.
func ClassifyBrand(brand string) models.BrandCategory {
	for _, rule := range categoryRules {
		if _, ok := rule.brands[brand]; ok {
			return rule.category
		}
	}
	if IsLuxuryBrand(brand) {
		return models.OtherLuxury
	}
	return models.MassMarket
}

// LuxuryBrands returns the luxury reference set in alphabetical order.
func LuxuryBrands() []string {
	out := make([]string, 0, len(luxuryBrands))
	for b := range luxuryBrands {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// IsPerformanceTag reports whether a Market Category cell marks a performance car.
func IsPerformanceTag(tags string) bool {
	return performanceRegexp.MatchString(tags)
}

// IsLuxuryTag reports whether a Market Category cell carries the Luxury tag.
func IsLuxuryTag(tags string) bool {
	return luxuryTagRegexp.MatchString(tags)
}
