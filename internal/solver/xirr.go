// Package solver computes the annualized internal rate of return for an
// irregular series of dated cash flows. It is a standalone collaborator:
// callers hand it signed flows and get back a decimal rate or an error.
package solver

import (
	"errors"
	"math"
	"sort"

	"github.com/tealscan/tealscan/internal/models"
)

var (
	// ErrNoFlows means the series was empty.
	ErrNoFlows = errors.New("solver: no cash flows")

	// ErrNoSignChange means the series has no outflow/inflow pair, so no
	// rate of return exists.
	ErrNoSignChange = errors.New("solver: cash flows must contain both outflows and inflows")

	// ErrNoConvergence means neither Newton iteration nor bisection found
	// a root within the search bracket.
	ErrNoConvergence = errors.New("solver: rate did not converge")
)

const (
	newtonMaxIter = 100
	newtonTol     = 1e-7
	bisectMaxIter = 200
	bisectTol     = 1e-6
	minRate       = -0.999 // rate can't go below -99.9%
	maxRate       = 100.0  // 10000% annual return cap
)

// Solve finds the rate r such that the net present value of the flows is
// zero, using Newton iteration with bisection as fallback. Input need not be
// sorted. The result is a decimal rate (0.12 = 12% annualized).
func Solve(flows []models.CashFlow) (float64, error) {
	if len(flows) == 0 {
		return 0, ErrNoFlows
	}

	sorted := make([]models.CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	hasNeg, hasPos := false, false
	for _, f := range sorted {
		if f.Amount < 0 {
			hasNeg = true
		}
		if f.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return 0, ErrNoSignChange
	}

	// Convert dates to year fractions from the first flow
	baseDate := sorted[0].Date
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		days := f.Date.Sub(baseDate).Hours() / 24
		years[i] = days / 365.25
	}

	rate, ok := newton(sorted, years)
	if ok {
		return rate, nil
	}

	rate, ok = bisect(sorted, years)
	if !ok {
		return 0, ErrNoConvergence
	}
	return rate, nil
}

// npvAt evaluates the net present value of the flows at the given rate.
// Returns NaN when the discount base goes non-positive.
func npvAt(flows []models.CashFlow, years []float64, rate float64) float64 {
	base := 1 + rate
	if base <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i, f := range flows {
		sum += f.Amount / math.Pow(base, years[i])
	}
	return sum
}

// newton runs Newton-Raphson iteration starting from the simple return.
func newton(flows []models.CashFlow, years []float64) (float64, bool) {
	totalInvested := 0.0
	totalReceived := 0.0
	for _, f := range flows {
		if f.Amount < 0 {
			totalInvested -= f.Amount
		} else {
			totalReceived += f.Amount
		}
	}

	guess := 0.1 // default 10%
	if totalInvested > 0 {
		simpleReturn := totalReceived/totalInvested - 1
		// Clamp initial guess to a reasonable range
		if simpleReturn > -0.9 && simpleReturn < 10 {
			guess = simpleReturn
		}
	}

	rate := guess

	for iter := 0; iter < newtonMaxIter; iter++ {
		npv := 0.0
		dnpv := 0.0 // derivative of NPV with respect to rate

		base := 1 + rate
		if base <= 0 {
			rate = minRate
			base = 1 + rate
		}

		for i, f := range flows {
			y := years[i]
			discount := math.Pow(base, y)
			if discount == 0 {
				continue
			}
			npv += f.Amount / discount
			if y != 0 {
				dnpv -= y * f.Amount / (discount * base)
			}
		}

		if math.Abs(npv) < newtonTol {
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return 0, false
			}
			return rate, true
		}

		if dnpv == 0 {
			// Derivative is zero — can't continue
			return 0, false
		}

		newRate := rate - npv/dnpv

		// Clamp to prevent wild oscillation
		if newRate < minRate {
			newRate = minRate
		}
		if newRate > maxRate {
			newRate = maxRate
		}

		rate = newRate
	}

	return 0, false
}

// bisect searches [-0.99, 10] for a sign change and narrows it down.
func bisect(flows []models.CashFlow, years []float64) (float64, bool) {
	lo, hi := -0.99, 10.0
	npvLo := npvAt(flows, years, lo)
	npvHi := npvAt(flows, years, hi)

	if math.IsNaN(npvLo) || math.IsNaN(npvHi) {
		return 0, false
	}
	if npvLo*npvHi > 0 {
		// Same sign — no root in this bracket
		return 0, false
	}

	for iter := 0; iter < bisectMaxIter; iter++ {
		mid := (lo + hi) / 2
		npvMid := npvAt(flows, years, mid)
		if math.IsNaN(npvMid) {
			return 0, false
		}
		if math.Abs(npvMid) < bisectTol {
			return mid, true
		}
		if npvMid*npvLo < 0 {
			hi = mid
		} else {
			lo = mid
			npvLo = npvMid
		}
	}

	return (lo + hi) / 2, true
}
