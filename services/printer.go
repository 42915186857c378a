package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	moneyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const ruleWidth = 60

func money(f float64) string {
	return "$" + humanize.FormatFloat("#,###.##", f)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n", sectionStyle.Render("  "+title), mutedStyle.Render(strings.Repeat("─", ruleWidth-4)))
}

func printCounts(w io.Writer, counts []models.ValueCount) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render("no data"))
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "  %-30s %s\n", truncate(c.Name, 28), valueStyle.Render(count(c.Count)))
	}
}

// Print renders the report to w.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", ruleWidth)

	fmt.Fprintf(w, "\n%s\n", bannerStyle.Render(sep))
	fmt.Fprintf(w, "%s\n", bannerStyle.Render("  SUMMARY STATISTICS"))
	fmt.Fprintf(w, "%s\n", bannerStyle.Render(sep))

	if r.Sales != nil {
		printSales(w, r.Sales)
	}
	if r.Specs != nil {
		printSpecs(w, r.Specs)
	}

	fmt.Fprintf(w, "\n%s\n\n", bannerStyle.Render(sep))
}

func printSales(w io.Writer, r *models.SalesSummary) {
	section(w, "Sales Data Summary")
	fmt.Fprintf(w, "  Total rows            : %s\n", valueStyle.Render(count(r.TotalRows)))
	fmt.Fprintf(w, "  Total luxury cars     : %s (%.1f%%)\n", valueStyle.Render(count(r.LuxuryCount)), r.LuxuryShare)
	fmt.Fprintf(w, "  Average selling price : %s\n", moneyStyle.Render(money(r.AveragePrice)))
	fmt.Fprintf(w, "  Average luxury price  : %s\n", moneyStyle.Render(money(r.AverageLuxury)))

	section(w, fmt.Sprintf("Top %d Brands by Volume", topMakes))
	printCounts(w, r.TopMakes)

	section(w, "German Luxury Brands")
	fmt.Fprintf(w, "  Total: %s cars\n", valueStyle.Render(count(r.GermanTotal)))
	fmt.Fprintf(w, "  Average age: %s years\n", valueStyle.Render(fmt.Sprintf("%.1f", r.GermanAverageAge)))
	printCounts(w, r.GermanByMake)

	section(w, fmt.Sprintf("Top %d States", topStates))
	printCounts(w, r.TopStates)

	section(w, "Price Distribution by Category")
	if len(r.PriceByCategory) == 0 {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render("no data"))
	}
	for _, c := range r.PriceByCategory {
		fmt.Fprintf(w, "  %-18s mean %s  median %s  count %s\n",
			c.Category, moneyStyle.Render(money(c.Mean)), money(c.Median), count(c.Count))
	}
}

func printSpecs(w io.Writer, r *models.SpecsSummary) {
	section(w, "Specifications Summary")
	fmt.Fprintf(w, "  Total rows            : %s\n", valueStyle.Render(count(r.TotalRows)))
	fmt.Fprintf(w, "  Luxury brand models   : %s\n", valueStyle.Render(count(r.LuxuryCount)))
	fmt.Fprintf(w, "  Performance models    : %s\n", valueStyle.Render(count(r.PerformanceCount)))
	fmt.Fprintf(w, "  Luxury-tagged models  : %s\n", valueStyle.Render(count(r.LuxuryCatCount)))

	section(w, "German Luxury Horsepower")
	if len(r.GermanHorsepower) == 0 {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render("no data"))
	}
	for _, hp := range r.GermanHorsepower {
		fmt.Fprintf(w, "  %-16s n=%-6s mean %.0f  median %.0f  range %.0f-%.0f\n",
			hp.Make, count(hp.Count), hp.Mean, hp.Median, hp.Min, hp.Max)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
