// Package analyzer implements the metrics-and-classification engine:
// cash-flow derivation, partial-history detection, return calculation,
// name-based classification, performance rating, and portfolio aggregation.
package analyzer

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tealscan/tealscan/internal/models"
)

// flowRule maps a description keyword to a cash-flow direction.
// Rules are evaluated top-down, first match wins. Sign inference from
// free-text descriptions is heuristic; institutions vary, so the table is
// the single place to extend.
type flowRule struct {
	keyword string
	outflow bool
}

var flowRules = []flowRule{
	// Money out of the investor's pocket (negative)
	{"PURCHASE", true},
	{"SIP", true},
	{"SWITCH IN", true},
	{"STP IN", true},
	{"DIVIDEND", true}, // covers reinvestment variants by substring

	// Money back to the investor (positive)
	{"REDEMPTION", false},
	{"SWITCH OUT", false},
	{"STP OUT", false},
	{"SWP", false},
}

// signedAmount applies the rule table to a transaction description.
// Unmatched descriptions default to outflow, assuming a purchase.
func signedAmount(description string, amount float64) float64 {
	desc := strings.ToUpper(description)
	for _, r := range flowRules {
		if strings.Contains(desc, r.keyword) {
			if r.outflow {
				return -amount
			}
			return amount
		}
	}
	return -amount
}

// BuildCashFlows converts a scheme's transaction history into a dated signed
// cash-flow series: one entry per non-zero transaction, sorted ascending by
// date (statement order preserved among ties), plus one terminal inflow of
// the full current value dated asOf.
func BuildCashFlows(scheme models.Scheme, asOf time.Time) []models.CashFlow {
	flows := make([]models.CashFlow, 0, len(scheme.Transactions)+1)
	for _, tx := range scheme.Transactions {
		amount := math.Abs(tx.AmountValue())
		if amount == 0 {
			continue
		}
		flows = append(flows, models.CashFlow{
			Date:   tx.Date.Time,
			Amount: signedAmount(tx.Description, amount),
		})
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})

	flows = append(flows, models.CashFlow{
		Date:   asOf,
		Amount: scheme.CurrentValue(),
	})

	return flows
}
