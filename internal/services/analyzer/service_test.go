package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/tealscan/tealscan/internal/models"
)

func statementOf(schemes ...models.Scheme) *models.Statement {
	return &models.Statement{
		Folios: []models.Folio{{Folio: "12345/67", Schemes: schemes}},
	}
}

func TestAnalyzeStatement_NilStatement(t *testing.T) {
	s := newTestService()
	if _, err := s.AnalyzeStatement(context.Background(), nil, time.Now()); err == nil {
		t.Fatal("expected error for nil statement")
	}
}

func TestAnalyzeStatement_ExcludesNegligibleSchemes(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("Tiny Residual Fund", fl(99.99), fl(100)),
		scheme("Kept Fund", fl(100), fl(100)),
		scheme("Closed Out Fund", nil, fl(5000)),
	)

	scan, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}

	if len(scan.Schemes) != 1 {
		t.Fatalf("len(schemes) = %d, want 1", len(scan.Schemes))
	}
	if scan.Schemes[0].FundName != "Kept Fund" {
		t.Errorf("kept scheme = %q", scan.Schemes[0].FundName)
	}
	if scan.TotalValue != 100 {
		t.Errorf("total value = %v, want 100 (excluded schemes must not count)", scan.TotalValue)
	}
}

func TestAnalyzeStatement_CommissionLoss(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("ABC Flexi Cap Fund - Direct Plan", fl(100000), fl(80000)),
		scheme("ABC Flexi Cap Fund - Regular Plan", fl(50000), fl(40000)),
	)

	scan, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}

	if scan.Schemes[0].CommissionLoss != 0 {
		t.Errorf("direct plan loss = %v, want 0", scan.Schemes[0].CommissionLoss)
	}
	if !approxEqual(scan.Schemes[1].CommissionLoss, 500, 1e-9) {
		t.Errorf("regular plan loss = %v, want 500", scan.Schemes[1].CommissionLoss)
	}
	if !approxEqual(scan.TotalCommissionLoss, 500, 1e-9) {
		t.Errorf("total loss = %v, want 500", scan.TotalCommissionLoss)
	}
}

func TestAnalyzeStatement_ConcentrationFlag(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("A Small Cap Fund", fl(1000), fl(900)),
		scheme("B Small Cap Fund", fl(1000), fl(900)),
		scheme("C Small Cap Fund", fl(1000), fl(900)),
		scheme("D Large Cap Fund", fl(1000), fl(900)),
		scheme("E Large Cap Fund", fl(1000), fl(900)),
	)

	scan, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}

	// Three small caps exceed the limit of 2; two large caps do not.
	if len(scan.Concentrations) != 1 {
		t.Fatalf("concentrations = %+v, want exactly one", scan.Concentrations)
	}
	risk := scan.Concentrations[0]
	if risk.SubCategory != models.SubCategorySmallCap || risk.Count != 3 {
		t.Errorf("risk = %+v, want Small Cap ×3", risk)
	}
}

func TestAnalyzeStatement_PerSchemeIsolation(t *testing.T) {
	// One scheme with an unusable history must not stop the others.
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("Broken Fund", fl(500), fl(400), tx(2024, 1, 1, 1000, "Redemption")),
		scheme("Good Fund", fl(100000), fl(80000), tx(2024, 6, 1, 80000, "Purchase")),
	)

	scan, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}

	if len(scan.Schemes) != 2 {
		t.Fatalf("len(schemes) = %d, want 2", len(scan.Schemes))
	}
	if scan.Schemes[0].Status != models.StatusCalcError {
		t.Errorf("broken scheme status = %v, want CALC_ERROR", scan.Schemes[0].Status)
	}
	if scan.Schemes[1].Status != models.StatusOK {
		t.Errorf("good scheme status = %v, want OK", scan.Schemes[1].Status)
	}
}

func TestAnalyzeStatement_Idempotent(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("ABC Flexi Cap Fund - Direct Plan", fl(100000), fl(80000),
			tx(2024, 6, 1, 80000, "Purchase")),
		scheme("XYZ Bond Fund", fl(50000), nil),
	)

	first, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if !bytes.Equal(b1, b2) {
		t.Errorf("scan output not byte-identical across runs:\n%s\n%s", b1, b2)
	}
}

func TestAnalyzeStatement_EndToEndScenario(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	stmt := statementOf(
		scheme("ABC Flexi Cap Fund - Direct Plan - Growth", fl(100000), fl(80000),
			tx(2024, 6, 1, 80000, "Purchase")),
		scheme("XYZ Bond Fund", fl(50000), nil),
	)

	scan, err := s.AnalyzeStatement(context.Background(), stmt, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(scan.Schemes) != 2 {
		t.Fatalf("len(schemes) = %d, want 2", len(scan.Schemes))
	}

	equity := scan.Schemes[0]
	if equity.Plan != models.PlanDirect {
		t.Errorf("equity plan = %v, want Direct", equity.Plan)
	}
	if equity.AssetClass != models.AssetEquity {
		t.Errorf("equity asset class = %v", equity.AssetClass)
	}
	if !approxEqual(equity.AbsoluteReturn, 25.0, 1e-9) {
		t.Errorf("equity absolute return = %v, want 25", equity.AbsoluteReturn)
	}
	if equity.XIRR == nil || !approxEqual(*equity.XIRR, 25.0, 1.0) {
		t.Errorf("equity xirr = %v, want ~25", equity.XIRR)
	}
	if equity.Rating != models.RatingInForm {
		t.Errorf("equity rating = %v, want In Form", equity.Rating)
	}
	if equity.CommissionLoss != 0 {
		t.Errorf("equity commission loss = %v, want 0", equity.CommissionLoss)
	}

	debt := scan.Schemes[1]
	if debt.Status != models.StatusNoHistory {
		t.Errorf("debt status = %v, want NO_HISTORY", debt.Status)
	}
	if debt.AssetClass != models.AssetDebt {
		t.Errorf("debt asset class = %v, want Debt", debt.AssetClass)
	}
	if debt.AbsoluteReturn != 0 {
		t.Errorf("debt absolute return = %v, want 0 with absent cost", debt.AbsoluteReturn)
	}
	if !approxEqual(debt.CommissionLoss, 500, 1e-9) {
		t.Errorf("debt commission loss = %v, want 500", debt.CommissionLoss)
	}

	if !approxEqual(scan.TotalValue, 150000, 1e-9) {
		t.Errorf("total value = %v, want 150000", scan.TotalValue)
	}
	if !approxEqual(scan.TotalCost, 80000, 1e-9) {
		t.Errorf("total cost = %v, want 80000", scan.TotalCost)
	}
	if !approxEqual(scan.TotalGain, 70000, 1e-9) {
		t.Errorf("total gain = %v, want 70000", scan.TotalGain)
	}
	if !approxEqual(scan.TotalCommissionLoss, 500, 1e-9) {
		t.Errorf("total commission loss = %v, want 500", scan.TotalCommissionLoss)
	}
}
