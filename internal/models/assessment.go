// internal/models/assessment.go
package models

// RiskLevel classifies the post-cap risk score: >=7.0 LOW, >=4.0 MEDIUM,
// otherwise HIGH.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskAssessment is the scoring output of stage 1. Immutable after creation.
// RedFlags and PositivePoints keep their trigger order for traceability.
type RiskAssessment struct {
	Score          float64   `json:"risk_score"`
	Level          RiskLevel `json:"risk_level"`
	RedFlags       []string  `json:"red_flags"`
	PositivePoints []string  `json:"positive_points"`
	Recommendation string    `json:"recommendation"`
}
