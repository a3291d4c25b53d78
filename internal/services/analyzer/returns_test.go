package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/models"
)

func newTestService() *Service {
	return NewService(common.NewDefaultConfig().Engine, common.NewSilentLogger())
}

func approxEqual(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

func TestCalculateReturns_NoHistory(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	res := s.calculateReturns(scheme("XYZ Bond Fund", fl(50000), fl(40000)), asOf)

	if res.Status != models.StatusNoHistory {
		t.Errorf("status = %v, want NO_HISTORY", res.Status)
	}
	if res.XIRR != nil {
		t.Errorf("xirr = %v, want nil", *res.XIRR)
	}
	if !approxEqual(res.AbsoluteReturn, 25.0, 1e-9) {
		t.Errorf("absolute return = %v, want 25.0", res.AbsoluteReturn)
	}
}

func TestCalculateReturns_NoHistoryZeroCost(t *testing.T) {
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	res := s.calculateReturns(scheme("XYZ Bond Fund", fl(50000), nil), asOf)

	if res.Status != models.StatusNoHistory {
		t.Errorf("status = %v, want NO_HISTORY", res.Status)
	}
	if res.AbsoluteReturn != 0 {
		t.Errorf("absolute return = %v, want 0 with absent cost", res.AbsoluteReturn)
	}
}

func TestCalculateReturns_PartialData(t *testing.T) {
	// invested_sum = 1000, current_value = 6000 (ratio 6 > 5),
	// total_cost = 5500 > invested_sum → partial history
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sch := scheme("Fund", fl(6000), fl(5500), tx(2025, 1, 1, 1000, "Purchase"))
	res := s.calculateReturns(sch, asOf)

	if res.Status != models.StatusPartialData {
		t.Errorf("status = %v, want PARTIAL_DATA", res.Status)
	}
	if res.XIRR != nil {
		t.Errorf("xirr = %v, want nil", *res.XIRR)
	}
	if !approxEqual(res.AbsoluteReturn, (6000.0-5500.0)/5500.0*100, 1e-9) {
		t.Errorf("absolute return = %v", res.AbsoluteReturn)
	}
}

func TestCalculateReturns_FullHistoryNotFlagged(t *testing.T) {
	// High ratio alone is not enough: cost must also exceed the invested sum.
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sch := scheme("Fund", fl(6000), fl(900), tx(2015, 1, 1, 1000, "Purchase"))
	res := s.calculateReturns(sch, asOf)

	if res.Status != models.StatusOK {
		t.Errorf("status = %v, want OK", res.Status)
	}
}

func TestCalculateReturns_OneYearGain(t *testing.T) {
	// 80,000 invested exactly one year ago, now worth 100,000:
	// absolute 25%, XIRR near 25%.
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sch := scheme("Equity Fund - Direct", fl(100000), fl(80000),
		tx(2024, 6, 1, 80000, "Purchase"))
	res := s.calculateReturns(sch, asOf)

	if res.Status != models.StatusOK {
		t.Fatalf("status = %v, want OK", res.Status)
	}
	if !approxEqual(res.AbsoluteReturn, 25.0, 1e-9) {
		t.Errorf("absolute return = %v, want 25.0", res.AbsoluteReturn)
	}
	if res.XIRR == nil {
		t.Fatal("xirr = nil, want a value")
	}
	if !approxEqual(*res.XIRR, 25.0, 1.0) {
		t.Errorf("xirr = %v, want ~25", *res.XIRR)
	}
}

func TestCalculateReturns_ImplausibleRate(t *testing.T) {
	// Money doubled in six months: the solver converges near 300%
	// annualized, far past the 100% upper bound.
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sch := scheme("Fund", fl(2000), fl(1000), tx(2024, 12, 1, 1000, "Purchase"))
	res := s.calculateReturns(sch, asOf)

	if res.Status != models.StatusDataMismatch {
		t.Errorf("status = %v, want DATA_MISMATCH", res.Status)
	}
	if res.XIRR != nil {
		t.Errorf("xirr = %v, want nil", *res.XIRR)
	}
	if !approxEqual(res.AbsoluteReturn, 100.0, 1e-9) {
		t.Errorf("absolute return = %v, want 100", res.AbsoluteReturn)
	}
}

func TestCalculateReturns_SolverFailure(t *testing.T) {
	// Only an inflow plus the positive terminal value: no sign change, the
	// solver cannot produce a rate.
	s := newTestService()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sch := scheme("Fund", fl(500), fl(400), tx(2024, 1, 1, 1000, "Redemption"))
	res := s.calculateReturns(sch, asOf)

	if res.Status != models.StatusCalcError {
		t.Errorf("status = %v, want CALC_ERROR", res.Status)
	}
	if res.XIRR != nil {
		t.Errorf("xirr = %v, want nil", *res.XIRR)
	}
}
