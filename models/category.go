package models

// BrandCategory is the market segment a brand is classified into.
type BrandCategory string

const (
	GermanLuxury   BrandCategory = "German Luxury"
	JapaneseLuxury BrandCategory = "Japanese Luxury"
	AmericanLuxury BrandCategory = "American Luxury"
	OtherLuxury    BrandCategory = "Other Luxury"
	MassMarket     BrandCategory = "Mass Market"
)

// BrandCategories lists every category in classification order.
func BrandCategories() []BrandCategory {
	return []BrandCategory{GermanLuxury, JapaneseLuxury, AmericanLuxury, OtherLuxury, MassMarket}
}

// Valid reports whether c is one of the five known categories.
func (c BrandCategory) Valid() bool {
	switch c {
	case GermanLuxury, JapaneseLuxury, AmericanLuxury, OtherLuxury, MassMarket:
		return true
	}
	return false
}
