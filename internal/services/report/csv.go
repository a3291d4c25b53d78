package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/models"
)

// csvHeader is the stable column order of the export table.
var csvHeader = []string{
	"Fund Name",
	"Asset Class",
	"Sub Category",
	"Current Value",
	"Invested Cost",
	"Plan",
	"XIRR %",
	"Absolute Return %",
	"Rating",
	"Status",
}

// FormatCSV renders the scan as a flat delimited table: one header row and
// one row per included holding, suitable for download or storage.
func (s *Service) FormatCSV(scan *models.PortfolioScan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range scan.Schemes {
		xirr := common.NotAvailable
		if row.XIRR != nil {
			xirr = fmt.Sprintf("%.2f", *row.XIRR)
		}

		record := []string{
			row.FundName,
			string(row.AssetClass),
			string(row.SubCategory),
			fmt.Sprintf("%.2f", row.CurrentValue),
			fmt.Sprintf("%.2f", row.InvestedCost),
			string(row.Plan),
			xirr,
			fmt.Sprintf("%.2f", row.AbsoluteReturn),
			string(row.Rating),
			string(row.Status),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
