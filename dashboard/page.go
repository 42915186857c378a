// Package dashboard renders the cleaned-data analytics as a self-contained HTML page,
// captures it as an image and serves it over HTTP.
package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

const (
	barRowHeight = 28
	barOffset    = 170
	barMaxLength = 330
)

// Scatter plot area in SVG user units.
const (
	scatterWidth  = 600
	scatterHeight = 340
	scatterLeft   = 80
	scatterRight  = 470
	scatterTop    = 10
	scatterBottom = 300
	legendX       = 495
)

var makeColors = []string{"#2680c2", "#e12d39", "#3ebd93", "#f0b429", "#9446ed", "#616e7c"}

// Metric is one headline number.
type Metric struct {
	Label string
	Value string
	Note  string
}

// Bar is one row of a horizontal bar chart, laid out in SVG user units.
type Bar struct {
	Label   string
	Value   float64
	Display string
	Y       int
	Length  float64
	ValueX  float64
}

// Chart is a titled horizontal bar chart.
type Chart struct {
	Title  string
	Height int
	Bars   []Bar
}

// Point is one scatter marker.
type Point struct {
	Make  string
	Label string
	Color string
	X, Y  float64
}

// Tick is an axis label placed at X, Y.
type Tick struct {
	Label string
	X, Y  float64
}

// LegendEntry maps a make to its marker colour.
type LegendEntry struct {
	Make  string
	Color string
	X, Y  float64
}

// Scatter plots German luxury models by horsepower (x) against MSRP (y).
type Scatter struct {
	Title                    string
	Width, Height            int
	Left, Right, Top, Bottom float64
	Points                   []Point
	XTicks, YTicks           []Tick
	Legend                   []LegendEntry
}

// Page is everything the dashboard template needs.
type Page struct {
	Title       string
	GeneratedAt time.Time
	Metrics     []Metric
	Charts      []Chart
	Scatter     *Scatter
	Horsepower  []models.HorsepowerStats
	Sales       *models.SalesSummary
	Specs       *models.SpecsSummary
}

// Build lays out the page for the given summaries. Either summary may be nil.
func Build(sales *models.SalesSummary, specs *models.SpecsSummary) *Page {
	p := &Page{
		Title:       "Automotive Market Analysis",
		GeneratedAt: time.Now(),
		Sales:       sales,
		Specs:       specs,
	}

	if sales != nil {
		p.Metrics = append(p.Metrics,
			Metric{Label: "Total Vehicles", Value: humanize.Comma(int64(sales.TotalRows))},
			Metric{Label: "Luxury Market Share", Value: fmt.Sprintf("%.1f%%", sales.LuxuryShare), Note: humanize.Comma(int64(sales.LuxuryCount)) + " vehicles"},
			Metric{Label: "Average Price", Value: money(sales.AveragePrice)},
			Metric{Label: "Luxury Premium", Value: fmt.Sprintf("%+.1f%%", sales.LuxuryPremiumPct), Note: money(sales.LuxuryPremium) + " over market"},
			Metric{Label: "German Luxury", Value: humanize.Comma(int64(sales.GermanTotal)), Note: fmt.Sprintf("%.1f%% of market", sales.GermanShare)},
			Metric{Label: "German Luxury Avg. Age", Value: fmt.Sprintf("%.1f yrs", sales.GermanAverageAge)},
		)

		p.addChart("Market Share by Category", countBars(sales.CategoryCounts))

		prices := make([]Bar, 0, len(sales.PriceByCategory))
		for _, c := range sales.PriceByCategory {
			prices = append(prices, Bar{Label: string(c.Category), Value: c.Mean, Display: money(c.Mean)})
		}
		p.addChart("Average Price by Category", prices)

		p.addChart("German Luxury Brands", countBars(sales.GermanByMake))

		yearly := make([]Bar, 0, len(sales.GermanYearly))
		for _, y := range sales.GermanYearly {
			yearly = append(yearly, Bar{Label: fmt.Sprintf("%d %s", y.Year, y.Make), Value: y.Mean, Display: money(y.Mean)})
		}
		p.addChart("German Average Price by Year", yearly)

		p.addChart("Top States by Volume", countBars(sales.TopStates))

		shares := make([]Bar, 0, len(sales.LuxuryByState))
		for _, s := range sales.LuxuryByState {
			shares = append(shares, Bar{Label: s.State, Value: s.Share, Display: fmt.Sprintf("%.1f%%", s.Share)})
		}
		p.addChart("Luxury Share by State", shares)
	}

	if specs != nil {
		p.Metrics = append(p.Metrics,
			Metric{Label: "Performance Models", Value: humanize.Comma(int64(specs.PerformanceCount)), Note: humanize.Comma(int64(specs.TotalRows)) + " specifications"},
		)
		hp := make([]Bar, 0, len(specs.GermanHorsepower))
		for _, h := range specs.GermanHorsepower {
			hp = append(hp, Bar{Label: h.Make, Value: h.Mean, Display: fmt.Sprintf("%.0f hp", h.Mean)})
		}
		p.addChart("Average Horsepower by German Brand", hp)
		p.Horsepower = specs.GermanHorsepower
		p.Scatter = buildScatter(specs.GermanPoints)
	}

	return p
}

// addChart scales bars against the largest value and skips empty charts.
func (p *Page) addChart(title string, bars []Bar) {
	if len(bars) == 0 {
		return
	}
	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	for i := range bars {
		bars[i].Y = i * barRowHeight
		if top > 0 {
			bars[i].Length = math.Round(bars[i].Value/top*barMaxLength*10) / 10
		}
		bars[i].ValueX = barOffset + bars[i].Length + 6
	}
	p.Charts = append(p.Charts, Chart{Title: title, Height: len(bars) * barRowHeight, Bars: bars})
}

// buildScatter scales the points into the plot area, one colour per make.
// It returns nil when there is nothing to plot.
func buildScatter(points []models.SpecPoint) *Scatter {
	if len(points) == 0 {
		return nil
	}

	minX, maxX := points[0].Horsepower, points[0].Horsepower
	minY, maxY := points[0].MSRP, points[0].MSRP
	colors := make(map[string]string)
	for _, pt := range points {
		minX, maxX = math.Min(minX, pt.Horsepower), math.Max(maxX, pt.Horsepower)
		minY, maxY = math.Min(minY, pt.MSRP), math.Max(maxY, pt.MSRP)
		colors[pt.Make] = ""
	}

	makes := make([]string, 0, len(colors))
	for m := range colors {
		makes = append(makes, m)
	}
	sort.Strings(makes)

	sc := &Scatter{
		Title:  "Price vs Performance Positioning",
		Width:  scatterWidth,
		Height: scatterHeight,
		Left:   scatterLeft,
		Right:  scatterRight,
		Top:    scatterTop,
		Bottom: scatterBottom,
	}
	for i, m := range makes {
		colors[m] = makeColors[i%len(makeColors)]
		sc.Legend = append(sc.Legend, LegendEntry{Make: m, Color: colors[m], X: legendX, Y: float64(scatterTop + 10 + i*20)})
	}

	x := axis(minX, maxX, scatterLeft, scatterRight)
	y := axis(minY, maxY, scatterBottom, scatterTop)
	for _, pt := range points {
		sc.Points = append(sc.Points, Point{
			Make:  pt.Make,
			Label: fmt.Sprintf("%s: %.0f hp, %s", pt.Make, pt.Horsepower, money(pt.MSRP)),
			Color: colors[pt.Make],
			X:     x(pt.Horsepower),
			Y:     y(pt.MSRP),
		})
	}

	for _, v := range []float64{minX, (minX + maxX) / 2, maxX} {
		sc.XTicks = append(sc.XTicks, Tick{Label: fmt.Sprintf("%.0f hp", v), X: x(v), Y: scatterBottom + 18})
	}
	for _, v := range []float64{minY, (minY + maxY) / 2, maxY} {
		sc.YTicks = append(sc.YTicks, Tick{Label: money(v), X: scatterLeft - 6, Y: y(v)})
	}
	return sc
}

// axis maps [lo, hi] linearly onto [from, to]. A zero-width range maps to from.
func axis(lo, hi, from, to float64) func(float64) float64 {
	return func(v float64) float64 {
		if hi == lo {
			return from
		}
		return math.Round((from+(v-lo)/(hi-lo)*(to-from))*10) / 10
	}
}

func countBars(counts []models.ValueCount) []Bar {
	bars := make([]Bar, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, Bar{Label: c.Name, Value: float64(c.Count), Display: humanize.Comma(int64(c.Count))})
	}
	return bars
}

func money(f float64) string {
	return "$" + humanize.FormatFloat("#,###.", f)
}
