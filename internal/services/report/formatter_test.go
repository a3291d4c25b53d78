package report

import (
	"strings"
	"testing"
	"time"

	"github.com/tealscan/tealscan/internal/models"
)

func fl(v float64) *float64 { return &v }

func sampleScan() *models.PortfolioScan {
	return &models.PortfolioScan{
		AsOf: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Schemes: []models.SchemeReport{
			{
				FundName:       "ABC Flexi Cap Fund - Direct Plan",
				AssetClass:     models.AssetEquity,
				SubCategory:    models.SubCategoryFlexiCap,
				CurrentValue:   100000,
				InvestedCost:   80000,
				Plan:           models.PlanDirect,
				XIRR:           fl(25.3),
				AbsoluteReturn: 25.0,
				Rating:         models.RatingInForm,
				Status:         models.StatusOK,
			},
			{
				FundName:       "XYZ Bond Fund",
				AssetClass:     models.AssetDebt,
				SubCategory:    models.SubCategoryOtherEquity,
				CurrentValue:   50000,
				InvestedCost:   0,
				Plan:           models.PlanRegular,
				AbsoluteReturn: 0,
				Rating:         models.RatingOutOfForm,
				Status:         models.StatusNoHistory,
				CommissionLoss: 500,
			},
		},
		TotalValue:          150000,
		TotalCost:           80000,
		TotalGain:           70000,
		TotalGainPct:        87.5,
		TotalCommissionLoss: 500,
	}
}

func TestFormatSummary_Sections(t *testing.T) {
	out := FormatSummary(sampleScan())

	for _, want := range []string{
		"# Portfolio X-Ray",
		"**Total Value:** ₹150,000",
		"**Total Gain:** +₹70,000 (+87.5%)",
		"## Holdings",
		"| ABC Flexi Cap Fund - Direct Plan | Equity | Flexi Cap |",
		"## Commission Leak",
		"₹500",
		"not available", // NoHistory scheme has no XIRR
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestFormatSummary_AllDirect(t *testing.T) {
	scan := sampleScan()
	scan.Schemes = scan.Schemes[:1]
	scan.TotalCommissionLoss = 0

	out := FormatSummary(scan)
	if !strings.Contains(out, "100% direct plans") {
		t.Errorf("expected all-direct message, got:\n%s", out)
	}
}

func TestFormatSummary_Concentrations(t *testing.T) {
	scan := sampleScan()
	scan.Concentrations = []models.ConcentrationRisk{
		{SubCategory: models.SubCategorySmallCap, Count: 4},
	}

	out := FormatSummary(scan)
	if !strings.Contains(out, "## Concentration Risk") {
		t.Error("expected concentration section")
	}
	if !strings.Contains(out, "**Small Cap**: 4 funds") {
		t.Errorf("expected small cap risk line, got:\n%s", out)
	}
}
