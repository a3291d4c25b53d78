package models

import "time"

// ReturnStatus is the per-scheme outcome of the return calculation.
// All statuses are non-fatal; absolute return is always reported.
type ReturnStatus string

const (
	StatusOK           ReturnStatus = "OK"            // XIRR converged within sanity bounds
	StatusNoHistory    ReturnStatus = "NO_HISTORY"    // zero transactions in the statement
	StatusPartialData  ReturnStatus = "PARTIAL_DATA"  // history visibly incomplete vs current value
	StatusCalcError    ReturnStatus = "CALC_ERROR"    // solver did not converge
	StatusDataMismatch ReturnStatus = "DATA_MISMATCH" // solver converged to an implausible rate
	StatusError        ReturnStatus = "ERROR"         // unexpected failure during computation
)

// ReturnResult carries the computed return metrics for one scheme.
// XIRR is populated only when Status is StatusOK.
type ReturnResult struct {
	XIRR           *float64     `json:"xirr,omitempty"` // annualized, percent
	AbsoluteReturn float64      `json:"absolute_return"`
	Status         ReturnStatus `json:"status"`
}

// AssetClass is the broad asset bucket derived from the fund name.
type AssetClass string

const (
	AssetEquity    AssetClass = "Equity"
	AssetDebt      AssetClass = "Debt"
	AssetCommodity AssetClass = "Commodity"
	AssetHybrid    AssetClass = "Hybrid"
)

// SubCategory is the specific fund category derived from the fund name.
type SubCategory string

const (
	SubCategorySmallCap       SubCategory = "Small Cap"
	SubCategoryMidCap         SubCategory = "Mid Cap"
	SubCategoryLargeAndMidCap SubCategory = "Large & Mid Cap"
	SubCategoryLargeCap       SubCategory = "Large Cap"
	SubCategoryFlexiCap       SubCategory = "Flexi Cap"
	SubCategoryELSS           SubCategory = "ELSS"
	SubCategoryIndexFund      SubCategory = "Index Fund"
	SubCategoryMultiCap       SubCategory = "Multi Cap"
	SubCategoryValueFund      SubCategory = "Value Fund"
	SubCategoryOtherEquity    SubCategory = "Other Equity"
)

// Classification is the derived asset class and sub-category for a scheme.
type Classification struct {
	AssetClass  AssetClass  `json:"asset_class"`
	SubCategory SubCategory `json:"sub_category"`
}

// RatingTier is the qualitative performance rating.
type RatingTier string

const (
	RatingInForm    RatingTier = "In Form"
	RatingOnTrack   RatingTier = "On Track"
	RatingOffTrack  RatingTier = "Off Track"
	RatingOutOfForm RatingTier = "Out of Form"
)

// PlanType distinguishes direct plans from distributor (regular) plans.
type PlanType string

const (
	PlanDirect  PlanType = "Direct"
	PlanRegular PlanType = "Regular"
)

// SchemeReport is one row of the portfolio report.
type SchemeReport struct {
	FundName       string       `json:"fund_name"`
	AssetClass     AssetClass   `json:"asset_class"`
	SubCategory    SubCategory  `json:"sub_category"`
	CurrentValue   float64      `json:"current_value"`
	InvestedCost   float64      `json:"invested_cost"`
	Plan           PlanType     `json:"plan"`
	XIRR           *float64     `json:"xirr,omitempty"` // percent; nil = not available
	AbsoluteReturn float64      `json:"absolute_return"`
	Rating         RatingTier   `json:"rating"`
	Status         ReturnStatus `json:"status"`
	CommissionLoss float64      `json:"commission_loss"`
}

// ConcentrationRisk flags a sub-category holding more schemes than the
// configured limit.
type ConcentrationRisk struct {
	SubCategory SubCategory `json:"sub_category"`
	Count       int         `json:"count"`
}

// PortfolioScan is the full engine output for one statement: per-scheme
// rows in statement order plus portfolio aggregates. Deterministic for a
// given statement and as-of date.
type PortfolioScan struct {
	AsOf                time.Time           `json:"as_of"`
	Schemes             []SchemeReport      `json:"schemes"`
	TotalValue          float64             `json:"total_value"`
	TotalCost           float64             `json:"total_cost"`
	TotalGain           float64             `json:"total_gain"`
	TotalGainPct        float64             `json:"total_gain_pct"`
	TotalCommissionLoss float64             `json:"total_commission_loss"`
	Concentrations      []ConcentrationRisk `json:"concentrations,omitempty"`
}

// PortfolioReport is a scan plus its rendered summary.
type PortfolioReport struct {
	Scan            *PortfolioScan `json:"scan"`
	SummaryMarkdown string         `json:"summary_markdown"`
}
