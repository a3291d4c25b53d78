package interfaces

import (
	"context"
	"time"

	"github.com/tealscan/tealscan/internal/models"
)

// AnalyzerService runs the metrics-and-classification engine over a parsed
// statement. asOf is the reference "today" for terminal cash flows; passing
// it explicitly keeps the computation pure and repeatable.
type AnalyzerService interface {
	AnalyzeStatement(ctx context.Context, stmt *models.Statement, asOf time.Time) (*models.PortfolioScan, error)
}

// ReportService drives the full pipeline (parse → analyze → format) and
// renders the export surfaces.
type ReportService interface {
	// ScanDocument parses an uploaded document via the external parser and
	// produces the full report.
	ScanDocument(ctx context.Context, doc []byte, password string, asOf time.Time) (*models.PortfolioReport, error)

	// ScanStatement produces the full report from an already-parsed statement.
	ScanStatement(ctx context.Context, stmt *models.Statement, asOf time.Time) (*models.PortfolioReport, error)

	// FormatCSV renders the scan as a flat delimited table with a header row.
	FormatCSV(scan *models.PortfolioScan) ([]byte, error)

	// RenderAllocationChart renders a PNG donut of value by asset class.
	RenderAllocationChart(scan *models.PortfolioScan) ([]byte, error)
}
