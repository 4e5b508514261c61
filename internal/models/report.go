// internal/models/report.go
package models

// Decision is the final lend/no-lend outcome of the decision table.
type Decision string

const (
	DecisionApprove            Decision = "APPROVE"
	DecisionApproveWithCaveats Decision = "APPROVE_WITH_CAVEATS"
	DecisionReview             Decision = "REVIEW"
	DecisionDeny               Decision = "DENY"
)

// SuggestedTerms are the funding conditions attached to a decision.
type SuggestedTerms struct {
	Rate       string `json:"suggested_rate"`
	Term       string `json:"suggested_term"`
	Collateral string `json:"suggested_collateral"`
	Monitoring string `json:"monitoring"`
}

// ExecutiveSummary is report section 1.
type ExecutiveSummary struct {
	Company      CompanyProfile `json:"company"`
	Receivable   Receivable     `json:"receivable"`
	AnalysisDate string         `json:"analysis_date"`
	RiskLevel    RiskLevel      `json:"risk_level"`
	RiskScore    float64        `json:"risk_score"`
	HealthScore  float64        `json:"health_score"`
	Summary      string         `json:"summary"`
}

// RiskAnalysisSection is report section 2.
type RiskAnalysisSection struct {
	RiskScore      float64   `json:"risk_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RedFlags       []string  `json:"red_flags"`
	PositivePoints []string  `json:"positive_points"`
	Recommendation string    `json:"recommendation"`
}

// FinancialIndicatorsSection is report section 3.
type FinancialIndicatorsSection struct {
	Ratios      RatioSet        `json:"ratios"`
	HealthScore float64         `json:"health_score"`
	Breakdown   HealthBreakdown `json:"breakdown"`
}

// FinalRecommendationSection is report section 4.
type FinalRecommendationSection struct {
	Decision       Decision       `json:"decision"`
	Terms          SuggestedTerms `json:"terms"`
	MonitoringPlan []string       `json:"monitoring_plan"`
}

// Report is the structured report payload: four fixed sections, built once by
// stage 3 and never mutated. Rendering to markdown is layered on top.
type Report struct {
	ExecutiveSummary    ExecutiveSummary           `json:"executive_summary"`
	RiskAnalysis        RiskAnalysisSection        `json:"risk_analysis"`
	FinancialIndicators FinancialIndicatorsSection `json:"financial_indicators"`
	FinalRecommendation FinalRecommendationSection `json:"final_recommendation"`
}

// ReportMetadata describes a generated report.
type ReportMetadata struct {
	GeneratedAt  string `json:"generated_at"`
	Sections     int    `json:"sections"`
	ReportLength int    `json:"report_length"`
}
