// internal/workers/credit/generate-credit-report/service.go
package generatecreditreport

import (
	"time"
	"unicode/utf8"

	"kyp-credit-workers/internal/models"
	"kyp-credit-workers/internal/report"
)

// buildReport assembles the four-section report and renders it to markdown.
// Pure with respect to upstream scores: nothing computed here feeds back into
// risk or health.
func buildReport(input *Input, now time.Time) (models.Report, string, models.ReportMetadata) {
	generatedAt := now.UTC().Format(time.RFC3339)
	rule := decide(input.RiskAnalysis.Score, input.Health.Score)

	rep := models.Report{
		ExecutiveSummary: models.ExecutiveSummary{
			Company:      input.ExtractedData.Company,
			Receivable:   input.ExtractedData.Receivable,
			AnalysisDate: now.UTC().Format("2006-01-02"),
			RiskLevel:    input.RiskAnalysis.Level,
			RiskScore:    input.RiskAnalysis.Score,
			HealthScore:  input.Health.Score,
			Summary:      input.Health.Summary,
		},
		RiskAnalysis: models.RiskAnalysisSection{
			RiskScore:      input.RiskAnalysis.Score,
			RiskLevel:      input.RiskAnalysis.Level,
			RedFlags:       input.RiskAnalysis.RedFlags,
			PositivePoints: input.RiskAnalysis.PositivePoints,
			Recommendation: input.RiskAnalysis.Recommendation,
		},
		FinancialIndicators: models.FinancialIndicatorsSection{
			Ratios:      input.Ratios,
			HealthScore: input.Health.Score,
			Breakdown:   input.Health.Breakdown,
		},
		FinalRecommendation: models.FinalRecommendationSection{
			Decision:       rule.decision,
			Terms:          rule.terms,
			MonitoringPlan: rule.plan,
		},
	}

	markdown := report.Render(rep, generatedAt)
	metadata := models.ReportMetadata{
		GeneratedAt:  generatedAt,
		Sections:     4,
		ReportLength: utf8.RuneCountInString(markdown),
	}

	return rep, markdown, metadata
}
