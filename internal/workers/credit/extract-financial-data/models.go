// internal/workers/credit/extract-financial-data/models.go
package extractfinancialdata

import (
	"kyp-credit-workers/internal/models"
)

// Input mirrors the raw analysis request document. Pointer fields distinguish
// absent values from explicit zeros: required fields missing is a validation
// error, optional financial figures missing default to zero with a
// completeness warning.
type Input struct {
	Company    *CompanySection    `json:"company"`
	Receivable *ReceivableSection `json:"receivable"`
	Financial  *FinancialSection  `json:"financial"`
}

type CompanySection struct {
	TaxID     *string `json:"tax_id"`
	LegalName *string `json:"legal_name"`
	Sector    *string `json:"sector"`
}

type ReceivableSection struct {
	Amount  *float64 `json:"amount"`
	DueDate *string  `json:"due_date"`
}

type FinancialSection struct {
	BalanceSheet    *BalanceSheetSection    `json:"balance_sheet"`
	IncomeStatement *IncomeStatementSection `json:"income_statement"`
	PaymentHistory  []PaymentEntry          `json:"payment_history"`
}

type BalanceSheetSection struct {
	CurrentAssets         *float64 `json:"current_assets"`
	NonCurrentAssets      *float64 `json:"non_current_assets"`
	CurrentLiabilities    *float64 `json:"current_liabilities"`
	NonCurrentLiabilities *float64 `json:"non_current_liabilities"`
	Equity                *float64 `json:"equity"`
}

type IncomeStatementSection struct {
	GrossRevenue    *float64 `json:"gross_revenue"`
	NetRevenue      *float64 `json:"net_revenue"`
	GrossProfit     *float64 `json:"gross_profit"`
	OperatingProfit *float64 `json:"operating_profit"`
	NetProfit       *float64 `json:"net_profit"`
	EBITDA          *float64 `json:"ebitda"`
}

type PaymentEntry struct {
	Amount   *float64 `json:"amount"`
	Status   string   `json:"status"`
	DaysLate int      `json:"days_late"`
}

// Output is the stage result published back to the process instance.
type Output struct {
	Status         string                `json:"status"`
	ExtractedData  models.ExtractedData  `json:"extracted_data"`
	RiskAssessment models.RiskAssessment `json:"risk_analysis"`
}
