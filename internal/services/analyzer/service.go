package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/interfaces"
	"github.com/tealscan/tealscan/internal/models"
)

// Compile-time interface check
var _ interfaces.AnalyzerService = (*Service)(nil)

// Service implements AnalyzerService
type Service struct {
	cfg    common.EngineConfig
	logger *common.Logger
}

// NewService creates a new analyzer service
func NewService(cfg common.EngineConfig, logger *common.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
	}
}

// AnalyzeStatement runs the engine over every scheme of the statement:
// classification, return metrics, rating, and commission-loss estimate per
// scheme, folded into portfolio totals and concentration flags. Schemes
// below the value cutoff are excluded from rows and aggregates alike.
// The fold is a pure function of (statement, asOf); rows keep statement order.
func (s *Service) AnalyzeStatement(ctx context.Context, stmt *models.Statement, asOf time.Time) (*models.PortfolioScan, error) {
	if stmt == nil {
		return nil, fmt.Errorf("statement is required")
	}

	scan := &models.PortfolioScan{
		AsOf:    asOf,
		Schemes: []models.SchemeReport{},
	}
	categoryCounts := make(map[models.SubCategory]int)

	for _, folio := range stmt.Folios {
		for _, scheme := range folio.Schemes {
			value := scheme.CurrentValue()
			if value < s.cfg.MinValueCutoff {
				s.logger.Debug().
					Str("scheme", scheme.Name).
					Float64("value", value).
					Msg("Scheme below value cutoff, excluded")
				continue
			}

			cls := Classify(scheme.Name)
			ret := s.calculateReturns(scheme, asOf)
			plan := PlanOf(scheme.Name)

			loss := 0.0
			if plan == models.PlanRegular {
				loss = value * s.cfg.CommissionRate
			}

			row := models.SchemeReport{
				FundName:       scheme.Name,
				AssetClass:     cls.AssetClass,
				SubCategory:    cls.SubCategory,
				CurrentValue:   value,
				InvestedCost:   scheme.TotalCost(),
				Plan:           plan,
				XIRR:           ret.XIRR,
				AbsoluteReturn: ret.AbsoluteReturn,
				Rating:         Rate(ret.XIRR, ret.AbsoluteReturn),
				Status:         ret.Status,
				CommissionLoss: loss,
			}

			scan.Schemes = append(scan.Schemes, row)
			scan.TotalValue += value
			scan.TotalCost += row.InvestedCost
			scan.TotalCommissionLoss += loss
			categoryCounts[cls.SubCategory]++
		}
	}

	scan.TotalGain = scan.TotalValue - scan.TotalCost
	if scan.TotalCost > 0 {
		scan.TotalGainPct = scan.TotalGain / scan.TotalCost * 100
	}

	scan.Concentrations = concentrationRisks(categoryCounts, s.cfg.ConcentrationLimit)

	s.logger.Info().
		Int("schemes", len(scan.Schemes)).
		Float64("total_value", scan.TotalValue).
		Float64("commission_loss", scan.TotalCommissionLoss).
		Int("concentrations", len(scan.Concentrations)).
		Msg("Statement analyzed")

	return scan, nil
}

// concentrationRisks flags sub-categories holding more schemes than the
// limit, sorted by sub-category name for stable output.
func concentrationRisks(counts map[models.SubCategory]int, limit int) []models.ConcentrationRisk {
	var risks []models.ConcentrationRisk
	for cat, n := range counts {
		if n > limit {
			risks = append(risks, models.ConcentrationRisk{SubCategory: cat, Count: n})
		}
	}
	sort.Slice(risks, func(i, j int) bool {
		return risks[i].SubCategory < risks[j].SubCategory
	})
	return risks
}
