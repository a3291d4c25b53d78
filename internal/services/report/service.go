// Package report assembles a portfolio scan into its delivery surfaces:
// the JSON report with a markdown summary, a flat CSV table, and an
// asset-allocation chart.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/interfaces"
	"github.com/tealscan/tealscan/internal/models"
)

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService
type Service struct {
	parser   interfaces.StatementParser
	analyzer interfaces.AnalyzerService
	logger   *common.Logger
}

// NewService creates a new report service
func NewService(parser interfaces.StatementParser, analyzer interfaces.AnalyzerService, logger *common.Logger) *Service {
	return &Service{
		parser:   parser,
		analyzer: analyzer,
		logger:   logger,
	}
}

// ScanDocument runs the full pipeline for an uploaded document: parse via
// the external statement parser, analyze, format. A parser rejection (wrong
// password, unreadable document) aborts the run with no partial output.
func (s *Service) ScanDocument(ctx context.Context, doc []byte, password string, asOf time.Time) (*models.PortfolioReport, error) {
	start := time.Now()

	stmt, err := s.parser.ParseStatement(ctx, doc, password)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	report, err := s.ScanStatement(ctx, stmt, asOf)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("schemes", len(report.Scan.Schemes)).
		Dur("duration", time.Since(start)).
		Msg("Document scan complete")

	return report, nil
}

// ScanStatement analyzes an already-parsed statement and attaches the
// rendered markdown summary.
func (s *Service) ScanStatement(ctx context.Context, stmt *models.Statement, asOf time.Time) (*models.PortfolioReport, error) {
	scan, err := s.analyzer.AnalyzeStatement(ctx, stmt, asOf)
	if err != nil {
		return nil, fmt.Errorf("analyze statement: %w", err)
	}

	return &models.PortfolioReport{
		Scan:            scan,
		SummaryMarkdown: FormatSummary(scan),
	}, nil
}
