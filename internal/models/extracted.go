// internal/models/extracted.go
package models

import "github.com/shopspring/decimal"

// DerivedMetrics are computed once during extraction and consumed read-only by
// the scorer and the ratio engine.
type DerivedMetrics struct {
	WorkingCapital decimal.Decimal `json:"working_capital"`
	// CurrentRatio is not applicable when current liabilities are zero; it is
	// then excluded from scoring rather than treated as a failure.
	CurrentRatio Ratio `json:"current_ratio"`
	// LatePaymentPct is the late/default share of the payment history by
	// amount, in [0,1]. Zero for an empty history.
	LatePaymentPct float64 `json:"late_payment_pct"`
}

// ExtractedData is the validated, structured output of stage 1. Produced once,
// never mutated downstream.
type ExtractedData struct {
	AnalysisID      string          `json:"analysis_id"`
	Company         CompanyProfile  `json:"company"`
	Receivable      Receivable      `json:"receivable"`
	BalanceSheet    BalanceSheet    `json:"balance_sheet"`
	IncomeStatement IncomeStatement `json:"income_statement"`
	PaymentHistory  []PaymentRecord `json:"payment_history"`
	History         HistorySummary  `json:"history"`
	Derived         DerivedMetrics  `json:"derived_metrics"`
	Completeness    Completeness    `json:"completeness"`
}
