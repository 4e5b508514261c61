// internal/workers/credit/calculate-financial-ratios/models.go
package calculatefinancialratios

import (
	"kyp-credit-workers/internal/models"
)

// Input carries the stage-1 output forward. Zeebe merges process variables, so
// the upstream status travels with the extraction.
type Input struct {
	Status        string               `json:"status"`
	ExtractedData models.ExtractedData `json:"extracted_data"`
}

// Output is the classified ratio payload for report generation.
type Output struct {
	Status string             `json:"status"`
	Ratios models.RatioSet    `json:"financial_ratios"`
	Health models.HealthScore `json:"health"`
}
