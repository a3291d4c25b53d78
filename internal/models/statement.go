// Package models defines data structures for TealScan
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used throughout parser output.
const DateLayout = "2006-01-02"

// Date is a calendar day as emitted by the statement parser ("2006-01-02").
// Time-of-day is always midnight UTC; the engine works at day granularity.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON parses "2006-01-02" (quoted), tolerating null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(DateLayout) + `"`), nil
}

// Transaction is a single dated movement within a scheme, as reported by the
// statement parser. Amount is a magnitude; direction is inferred downstream
// from the free-text description.
type Transaction struct {
	Date        Date     `json:"date"`
	Amount      *float64 `json:"amount"` // may be null in parser output
	Description string   `json:"description"`
}

// AmountValue returns the transaction amount, treating null as zero.
func (t Transaction) AmountValue() float64 {
	if t.Amount == nil {
		return 0
	}
	return *t.Amount
}

// Valuation carries the scheme's current value and total cost. Either may be
// absent in parser output and is treated as zero.
type Valuation struct {
	Date  Date     `json:"date"`
	Value *float64 `json:"value"`
	Cost  *float64 `json:"cost"`
}

// Scheme is an individual fund position within a folio.
type Scheme struct {
	Name         string        `json:"scheme"`
	ISIN         string        `json:"isin,omitempty"`
	Transactions []Transaction `json:"transactions"`
	Valuation    Valuation     `json:"valuation"`
}

// CurrentValue returns the scheme's current value, zero when absent.
func (s Scheme) CurrentValue() float64 {
	if s.Valuation.Value == nil {
		return 0
	}
	return *s.Valuation.Value
}

// TotalCost returns the scheme's invested cost, zero when absent.
func (s Scheme) TotalCost() float64 {
	if s.Valuation.Cost == nil {
		return 0
	}
	return *s.Valuation.Cost
}

// Folio is an account grouping of schemes. Purely a container.
type Folio struct {
	Folio   string   `json:"folio"`
	PAN     string   `json:"pan,omitempty"`
	Schemes []Scheme `json:"schemes"`
}

// StatementPeriod is the date range the statement covers, when reported.
type StatementPeriod struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// Statement is the structured output of the external statement parser:
// folios, each holding schemes with transactions and a valuation.
type Statement struct {
	Investor string          `json:"investor_info,omitempty"`
	Period   StatementPeriod `json:"statement_period"`
	Folios   []Folio         `json:"folios"`
}

// SchemeCount returns the number of schemes across all folios.
func (s *Statement) SchemeCount() int {
	n := 0
	for _, f := range s.Folios {
		n += len(f.Schemes)
	}
	return n
}

// DocumentInfo is the result of the upload preflight check.
type DocumentInfo struct {
	SizeBytes int  `json:"size_bytes"`
	Pages     int  `json:"pages"`
	Encrypted bool `json:"encrypted"`
}
