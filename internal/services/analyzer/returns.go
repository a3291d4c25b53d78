package analyzer

import (
	"time"

	"github.com/tealscan/tealscan/internal/models"
	"github.com/tealscan/tealscan/internal/solver"
)

// absoluteReturn is the simple percentage gain ignoring time.
// Defined as 0 when cost is zero.
func absoluteReturn(value, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (value - cost) / cost * 100
}

// calculateReturns produces the return metrics for one scheme. Absolute
// return is always populated; XIRR only when the solver converges to a
// plausible rate. A panic anywhere in the cash-flow/solver path is contained
// here and reported as StatusError, so one bad scheme cannot abort the scan.
func (s *Service) calculateReturns(scheme models.Scheme, asOf time.Time) (result models.ReturnResult) {
	absolute := absoluteReturn(scheme.CurrentValue(), scheme.TotalCost())
	result = models.ReturnResult{AbsoluteReturn: absolute}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("scheme", scheme.Name).
				Interface("panic", r).
				Msg("Return calculation failed unexpectedly")
			result = models.ReturnResult{
				AbsoluteReturn: absolute,
				Status:         models.StatusError,
			}
		}
	}()

	if status, skip := s.detectHistory(scheme); skip {
		result.Status = status
		return result
	}

	flows := BuildCashFlows(scheme, asOf)
	rate, err := solver.Solve(flows)
	if err != nil {
		s.logger.Debug().
			Str("scheme", scheme.Name).
			Err(err).
			Msg("Rate solver did not converge")
		result.Status = models.StatusCalcError
		return result
	}

	pct := rate * 100
	if pct > s.cfg.XIRRUpperBound || pct < s.cfg.XIRRLowerBound {
		s.logger.Debug().
			Str("scheme", scheme.Name).
			Float64("rate_pct", pct).
			Msg("Converged rate outside sanity bounds")
		result.Status = models.StatusDataMismatch
		return result
	}

	result.Status = models.StatusOK
	result.XIRR = &pct
	return result
}
