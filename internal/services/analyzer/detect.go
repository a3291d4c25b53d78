package analyzer

import (
	"math"

	"github.com/tealscan/tealscan/internal/models"
)

// investedSum totals the unsigned transaction amounts of a scheme.
func investedSum(scheme models.Scheme) float64 {
	sum := 0.0
	for _, tx := range scheme.Transactions {
		sum += math.Abs(tx.AmountValue())
	}
	return sum
}

// detectHistory inspects a scheme's recorded history before any solver call.
// It returns (status, true) when the rate computation must be skipped:
//
//   - StatusNoHistory: the statement carries no transactions for the scheme.
//   - StatusPartialData: the history visibly fails to explain the current
//     value, typical of "this financial year only" exports, which would
//     otherwise produce nonsensical rates. A scheme is flagged when the
//     current value exceeds the recorded invested sum by the configured
//     ratio while the reported cost also exceeds the invested sum.
func (s *Service) detectHistory(scheme models.Scheme) (models.ReturnStatus, bool) {
	if len(scheme.Transactions) == 0 {
		return models.StatusNoHistory, true
	}

	invested := investedSum(scheme)
	if invested > 0 &&
		scheme.CurrentValue()/invested > s.cfg.PartialValueRatio &&
		scheme.TotalCost() > invested {
		return models.StatusPartialData, true
	}

	return "", false
}
