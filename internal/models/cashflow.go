package models

import "time"

// CashFlow is a single dated signed cash flow for rate-of-return calculation.
// Negative values = money out (purchases), positive values = money in
// (redemptions, terminal current value).
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
