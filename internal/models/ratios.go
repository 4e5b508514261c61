// internal/models/ratios.go
package models

import "github.com/shopspring/decimal"

// Classification is the qualitative tier a ratio maps to against its benchmark.
type Classification string

const (
	ClassExcellent     Classification = "Excellent"
	ClassGood          Classification = "Good"
	ClassAdequate      Classification = "Adequate"
	ClassBelowExpected Classification = "Below Expected"
	// ClassNotApplicable marks ratios guarded against undefined arithmetic
	// (zero or negative denominator). Not an error; excluded from scoring.
	ClassNotApplicable Classification = "Not Applicable"
)

// Ratio is a tagged variant: either a computed value or explicitly not
// applicable. Sentinel numerics (0, Inf) are never used for undefined ratios.
type Ratio struct {
	Value      float64 `json:"value"`
	Applicable bool    `json:"applicable"`
}

func NewRatio(v float64) Ratio {
	return Ratio{Value: v, Applicable: true}
}

func NotApplicable() Ratio {
	return Ratio{}
}

// ClassifiedRatio pairs a ratio with its benchmark classification.
type ClassifiedRatio struct {
	Ratio
	Classification Classification `json:"classification"`
}

// ClassifiedAmount is an absolute monetary figure with a qualitative tier
// (used for working capital, which has no dimensionless benchmark).
type ClassifiedAmount struct {
	Value          decimal.Decimal `json:"value"`
	Classification Classification  `json:"classification"`
}

type LiquidityRatios struct {
	CurrentRatio   ClassifiedRatio  `json:"current_ratio"`
	QuickRatio     ClassifiedRatio  `json:"quick_ratio"`
	WorkingCapital ClassifiedAmount `json:"working_capital"`
}

type ProfitabilityRatios struct {
	ROE          ClassifiedRatio `json:"roe"`
	ROA          ClassifiedRatio `json:"roa"`
	GrossMargin  ClassifiedRatio `json:"gross_margin"`
	NetMargin    ClassifiedRatio `json:"net_margin"`
	EBITDAMargin ClassifiedRatio `json:"ebitda_margin"`
}

type DebtRatios struct {
	DebtRatio          ClassifiedRatio `json:"debt_ratio"`
	DebtToEquity       ClassifiedRatio `json:"debt_to_equity"`
	EquityMultiplier   ClassifiedRatio `json:"equity_multiplier"`
	ShortTermDebtRatio ClassifiedRatio `json:"short_term_debt_ratio"`
	InterestCoverage   ClassifiedRatio `json:"interest_coverage"`
}

// RatioSet is the full classified ratio output of stage 2.
type RatioSet struct {
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Profitability ProfitabilityRatios `json:"profitability"`
	Debt          DebtRatios          `json:"debt"`
	Alerts        []string            `json:"alerts"`
	Strengths     []string            `json:"strengths"`
}

// HealthBreakdown carries the per-category contributions to the health score,
// each in [0, 10/3].
type HealthBreakdown struct {
	Liquidity     float64 `json:"liquidity"`
	Profitability float64 `json:"profitability"`
	Debt          float64 `json:"debt"`
}

// HealthScore is the aggregate 0-10 financial soundness measure, distinct from
// the risk score.
type HealthScore struct {
	Score     float64         `json:"financial_health_score"`
	Breakdown HealthBreakdown `json:"breakdown"`
	Summary   string          `json:"summary"`
}
