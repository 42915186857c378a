package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/storage"
	"github.com/andrrresj/automotive-market-dashboard/utils"
)

const (
	headRows      = 5
	topExploreMax = 15
)

// Explorer profiles raw input files before cleaning.
type Explorer struct {
	logger *utils.Logger
}

func NewExplorer(logger *utils.Logger) *Explorer {
	return &Explorer{logger: logger}
}

// Profile loads the CSV at path and describes its shape, column kinds and missing values.
func (e *Explorer) Profile(path string) (*models.DatasetProfile, error) {
	t, err := storage.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return e.ProfileTable(path, t), nil
}

// ProfileTable describes an already loaded table.
func (e *Explorer) ProfileTable(path string, t *models.Table) *models.DatasetProfile {
	p := &models.DatasetProfile{Path: path, Rows: t.Len()}

	for _, col := range t.Columns() {
		values, _ := t.Column(col)
		missing := 0
		for _, v := range values {
			if v.IsNull() {
				missing++
			}
		}
		p.Columns = append(p.Columns, models.ColumnProfile{Name: col, Kind: t.ColumnKind(col), Missing: missing})
	}

	for i := 0; i < t.Len() && i < headRows; i++ {
		p.Head = append(p.Head, t.Row(i).Texts())
	}

	if col := brandColumn(t.Columns()); col != "" {
		counts := valueCounts(t, col)
		p.MakeColumn = col
		p.UniqueMakes = len(counts)
		p.TopMakes = head(counts, topExploreMax)
	}

	e.logger.Debug("[explore] %s: %d rows, %d columns", path, p.Rows, len(p.Columns))
	return p
}

// brandColumn picks the first column whose name mentions make or brand.
func brandColumn(columns []string) string {
	for _, c := range columns {
		lower := strings.ToLower(c)
		if strings.Contains(lower, "make") || strings.Contains(lower, "brand") {
			return c
		}
	}
	return ""
}

// Print renders a profile to w.
func (e *Explorer) Print(w io.Writer, p *models.DatasetProfile) {
	section(w, "Basic Info: "+p.Path)
	fmt.Fprintf(w, "  Total records : %s\n", valueStyle.Render(count(p.Rows)))
	fmt.Fprintf(w, "  Columns       : %d\n", len(p.Columns))

	section(w, "Columns")
	for _, c := range p.Columns {
		fmt.Fprintf(w, "  %-30s %s\n", truncate(c.Name, 28), c.Kind)
	}

	section(w, "Missing values")
	found := false
	for _, c := range p.Columns {
		if c.Missing > 0 {
			found = true
			fmt.Fprintf(w, "  %-30s %s\n", truncate(c.Name, 28), count(c.Missing))
		}
	}
	if !found {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render("none"))
	}

	section(w, fmt.Sprintf("First %d rows", headRows))
	for _, row := range p.Head {
		fmt.Fprintf(w, "  %s\n", truncate(strings.Join(row, " | "), ruleWidth*2))
	}

	if p.MakeColumn != "" {
		section(w, fmt.Sprintf("Brand column %q", p.MakeColumn))
		fmt.Fprintf(w, "  Unique brands: %s\n", valueStyle.Render(count(p.UniqueMakes)))
		printCounts(w, p.TopMakes)
	}
}
