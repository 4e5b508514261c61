// internal/models/company.go
package models

import "github.com/shopspring/decimal"

// CompanyProfile identifies the company under analysis. Immutable once extracted;
// Sector is only used for benchmark lookup.
type CompanyProfile struct {
	TaxID     string `json:"tax_id"`
	LegalName string `json:"legal_name"`
	Sector    string `json:"sector"`
}

// Receivable is the trade receivable (duplicata) being evaluated for funding.
type Receivable struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"` // ISO-8601 calendar date
}
