package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tealscan/tealscan/internal/models"
)

// Asset-class slice colors, in the order classes first appear.
var allocationPalette = []drawing.Color{
	drawing.ColorFromHex("0d9488"), // teal-600
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("9333ea"), // purple-600
}

// RenderAllocationChart renders a PNG donut of current value by asset class.
// Returns raw PNG bytes.
func (s *Service) RenderAllocationChart(scan *models.PortfolioScan) ([]byte, error) {
	totals := make(map[models.AssetClass]float64)
	var order []models.AssetClass
	for _, row := range scan.Schemes {
		if _, seen := totals[row.AssetClass]; !seen {
			order = append(order, row.AssetClass)
		}
		totals[row.AssetClass] += row.CurrentValue
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("no holdings to chart")
	}

	values := make([]chart.Value, 0, len(order))
	for i, class := range order {
		pct := 0.0
		if scan.TotalValue > 0 {
			pct = totals[class] / scan.TotalValue * 100
		}
		values = append(values, chart.Value{
			Value: totals[class],
			Label: fmt.Sprintf("%s %.1f%%", class, pct),
			Style: chart.Style{
				FillColor: allocationPalette[i%len(allocationPalette)],
			},
		})
	}

	graph := chart.DonutChart{
		Title:  "Asset Allocation",
		Width:  600,
		Height: 450,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
