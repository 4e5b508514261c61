// internal/models/financials.go
package models

import "github.com/shopspring/decimal"

// BalanceSheet holds the reported balance-sheet positions. Totals are derived
// during extraction (assets = current + non-current, same for liabilities).
// Equity may be negative; everything else is validated non-negative.
type BalanceSheet struct {
	CurrentAssets         decimal.Decimal `json:"current_assets"`
	NonCurrentAssets      decimal.Decimal `json:"non_current_assets"`
	TotalAssets           decimal.Decimal `json:"total_assets"`
	CurrentLiabilities    decimal.Decimal `json:"current_liabilities"`
	NonCurrentLiabilities decimal.Decimal `json:"non_current_liabilities"`
	TotalLiabilities      decimal.Decimal `json:"total_liabilities"`
	Equity                decimal.Decimal `json:"equity"`
}

// IncomeStatement holds the reported income-statement lines. Profit lines may
// be negative.
type IncomeStatement struct {
	GrossRevenue    decimal.Decimal `json:"gross_revenue"`
	NetRevenue      decimal.Decimal `json:"net_revenue"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	EBITDA          decimal.Decimal `json:"ebitda"`
}

// PaymentStatus is inferred from the reported status text and days late.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentLate    PaymentStatus = "LATE"
	PaymentDefault PaymentStatus = "DEFAULT"
)

// PaymentRecord is one prior operation in the company's payment history.
// Order is input order; it carries no temporal semantics.
type PaymentRecord struct {
	Amount   decimal.Decimal `json:"amount"`
	Status   PaymentStatus   `json:"status"`
	DaysLate int             `json:"days_late"`
}

// HistorySummary aggregates the payment history for scoring and reporting.
type HistorySummary struct {
	TotalOperations int             `json:"total_operations"`
	PaidOperations  int             `json:"paid_operations"`
	LateOperations  int             `json:"late_operations"`
	DefaultEvents   int             `json:"default_events"`
	AverageTicket   decimal.Decimal `json:"average_ticket"`
}

// Completeness flags optional financial fields that were absent from the input
// and defaulted to zero. Warnings only, never validation errors.
type Completeness struct {
	AllFieldsPresent bool     `json:"all_fields_present"`
	MissingFields    []string `json:"missing_fields"`
}
