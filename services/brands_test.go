package services

import (
	"testing"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func TestClassifyBrand(t *testing.T) {
	tests := []struct {
		brand string
		want  models.BrandCategory
	}{
		{"Mercedes-Benz", models.GermanLuxury},
		{"BMW", models.GermanLuxury},
		{"Audi", models.GermanLuxury},
		{"Lexus", models.JapaneseLuxury},
		{"Infiniti", models.JapaneseLuxury},
		{"Acura", models.JapaneseLuxury},
		{"Cadillac", models.AmericanLuxury},
		{"Lincoln", models.AmericanLuxury},
		{"Tesla", models.AmericanLuxury},
		{"Porsche", models.OtherLuxury},
		{"Jaguar", models.OtherLuxury},
		{"Land Rover", models.OtherLuxury},
		{"Volvo", models.OtherLuxury},
		{"Toyota", models.MassMarket},
		{"Ferrari", models.MassMarket},
		{"bmw", models.MassMarket},
		{"BMW ", models.MassMarket},
		{"Mercedes", models.MassMarket},
		{"", models.MassMarket},
	}

	for _, tt := range tests {
		got := ClassifyBrand(tt.brand)
		if got != tt.want {
			t.Errorf("ClassifyBrand(%q) = %q; want %q", tt.brand, got, tt.want)
		}
	}
}

func TestClassifyBrandIsTotal(t *testing.T) {
	inputs := append(LuxuryBrands(), "Kia", "Land  Rover", "Škoda", "日産", "\x00", "AUDI")
	for _, in := range inputs {
		if got := ClassifyBrand(in); !got.Valid() {
			t.Errorf("ClassifyBrand(%q) = %q is not a known category", in, got)
		}
	}
}

func TestLuxuryFlagAgreesWithCategory(t *testing.T) {
	for _, brand := range append(LuxuryBrands(), "Toyota", "Ford", "Ferrari") {
		luxury := IsLuxuryBrand(brand)
		mass := ClassifyBrand(brand) == models.MassMarket
		if luxury == mass {
			t.Errorf("%q: IsLuxuryBrand=%v but category %q", brand, luxury, ClassifyBrand(brand))
		}
	}
}

func TestLuxuryBrandsSorted(t *testing.T) {
	brands := LuxuryBrands()
	if len(brands) != 13 {
		t.Fatalf("expected 13 luxury brands, got %d", len(brands))
	}
	for i := 1; i < len(brands); i++ {
		if brands[i-1] > brands[i] {
			t.Errorf("LuxuryBrands not sorted at %d: %q > %q", i, brands[i-1], brands[i])
		}
	}
}

func TestMarketCategoryTags(t *testing.T) {
	tests := []struct {
		tags           string
		performance    bool
		luxuryCategory bool
	}{
		{"Exotic,High-Performance", true, false},
		{"Factory Tuner,Luxury,High-Performance", true, true},
		{"Luxury,Performance", true, true},
		{"Luxury", false, true},
		{"Hatchback", false, false},
		{"", false, false},
		{"exotic,luxury", false, false},
		{"Crossover|Luxury", false, true},
	}

	for _, tt := range tests {
		if got := IsPerformanceTag(tt.tags); got != tt.performance {
			t.Errorf("IsPerformanceTag(%q) = %v; want %v", tt.tags, got, tt.performance)
		}
		if got := IsLuxuryTag(tt.tags); got != tt.luxuryCategory {
			t.Errorf("IsLuxuryTag(%q) = %v; want %v", tt.tags, got, tt.luxuryCategory)
		}
	}
}
