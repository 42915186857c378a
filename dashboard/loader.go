package dashboard

import (
	"errors"
	"fmt"

	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/services"
	"github.com/andrrresj/automotive-market-dashboard/storage"
)

// Loader produces the report the dashboard displays.
type Loader func() (*models.InsightReport, error)

// FileLoader reads the cleaned CSV outputs on every call. A missing file leaves
// its side of the report empty; it is an error only when both are unavailable.
func FileLoader(salesPath, specsPath string, insights *services.InsightService) Loader {
	return func() (*models.InsightReport, error) {
		sales, salesErr := storage.ReadCSV(salesPath)
		specs, specsErr := storage.ReadCSV(specsPath)
		if salesErr != nil && specsErr != nil {
			return nil, fmt.Errorf("no cleaned data available: %w", errors.Join(salesErr, specsErr))
		}
		return insights.Generate(sales, specs), nil
	}
}
