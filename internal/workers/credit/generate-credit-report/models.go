// internal/workers/credit/generate-credit-report/models.go
package generatecreditreport

import "kyp-credit-workers/internal/models"

// Input is the accumulated process state from the two upstream stages.
type Input struct {
	Status        string                `json:"status"`
	ExtractedData models.ExtractedData  `json:"extracted_data"`
	RiskAnalysis  models.RiskAssessment `json:"risk_analysis"`
	Ratios        models.RatioSet       `json:"financial_ratios"`
	Health        models.HealthScore    `json:"health"`
}

type Output struct {
	Status        string                `json:"status"`
	FinalDecision models.Decision       `json:"final_decision"`
	Report        models.Report         `json:"credit_report"`
	// Markdown is the rendered document delivered to the credit desk.
	Markdown string                `json:"report"`
	Metadata models.ReportMetadata `json:"report_metadata"`
}
