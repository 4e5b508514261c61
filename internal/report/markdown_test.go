// internal/report/markdown_test.go
package report

import (
	"strings"
	"testing"

	"kyp-credit-workers/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleReport(decision models.Decision) models.Report {
	return models.Report{
		ExecutiveSummary: models.ExecutiveSummary{
			Company: models.CompanyProfile{
				TaxID:     "12345678000190",
				LegalName: "Empresa Exemplo LTDA",
				Sector:    "retail",
			},
			Receivable: models.Receivable{
				Amount:  decimal.NewFromInt(500000),
				DueDate: "2026-12-01",
			},
			AnalysisDate: "2026-08-31",
			RiskLevel:    models.RiskLow,
			RiskScore:    10.0,
			HealthScore:  8.5,
			Summary:      "Overall financial health scores 8.5/10.",
		},
		RiskAnalysis: models.RiskAnalysisSection{
			RiskScore:      10.0,
			RiskLevel:      models.RiskLow,
			RedFlags:       nil,
			PositivePoints: []string{"Strong liquidity position", "Consistent profitability"},
			Recommendation: "Favorable profile for the operation.",
		},
		FinancialIndicators: models.FinancialIndicatorsSection{
			Ratios: models.RatioSet{
				Liquidity: models.LiquidityRatios{
					CurrentRatio:   models.ClassifiedRatio{Ratio: models.NewRatio(2.5), Classification: models.ClassExcellent},
					QuickRatio:     models.ClassifiedRatio{Ratio: models.NewRatio(2.5), Classification: models.ClassExcellent},
					WorkingCapital: models.ClassifiedAmount{Value: decimal.NewFromInt(300000), Classification: models.ClassGood},
				},
				Profitability: models.ProfitabilityRatios{
					ROE:          models.ClassifiedRatio{Ratio: models.NewRatio(0.25), Classification: models.ClassExcellent},
					ROA:          models.ClassifiedRatio{Ratio: models.NewRatio(0.12), Classification: models.ClassExcellent},
					GrossMargin:  models.ClassifiedRatio{Ratio: models.NewRatio(0.45), Classification: models.ClassExcellent},
					NetMargin:    models.ClassifiedRatio{Ratio: models.NewRatio(0.18), Classification: models.ClassGood},
					EBITDAMargin: models.ClassifiedRatio{Ratio: models.NewRatio(0.22), Classification: models.ClassGood},
				},
				Debt: models.DebtRatios{
					DebtRatio:          models.ClassifiedRatio{Ratio: models.NewRatio(0.30), Classification: models.ClassExcellent},
					DebtToEquity:       models.ClassifiedRatio{Ratio: models.NewRatio(0.43), Classification: models.ClassExcellent},
					EquityMultiplier:   models.ClassifiedRatio{Ratio: models.NewRatio(1.43), Classification: models.ClassExcellent},
					ShortTermDebtRatio: models.ClassifiedRatio{Ratio: models.NewRatio(0.50), Classification: models.ClassAdequate},
					InterestCoverage:   models.ClassifiedRatio{Ratio: models.NewRatio(6.7), Classification: models.ClassExcellent},
				},
				Strengths: []string{"Current ratio of 2.50 indicates excellent liquidity"},
			},
			HealthScore: 8.5,
			Breakdown:   models.HealthBreakdown{Liquidity: 3.33, Profitability: 3.33, Debt: 2.67},
		},
		FinalRecommendation: models.FinalRecommendationSection{
			Decision: decision,
			Terms: models.SuggestedTerms{
				Rate:       "CDI + 2.5% p.a.",
				Term:       "180 days",
				Collateral: "Trade receivable",
				Monitoring: "semiannual",
			},
			MonitoringPlan: []string{"Semiannual review of financial indicators"},
		},
	}
}

func TestRenderContainsAllSections(t *testing.T) {
	md := Render(sampleReport(models.DecisionApprove), "2026-08-31T12:00:00Z")

	assert.Contains(t, md, "# CREDIT ANALYSIS REPORT")
	assert.Contains(t, md, "## 1. EXECUTIVE SUMMARY")
	assert.Contains(t, md, "## 2. RISK ANALYSIS")
	assert.Contains(t, md, "## 3. FINANCIAL INDICATORS")
	assert.Contains(t, md, "## 4. FINAL RECOMMENDATION")
	assert.Contains(t, md, "**DECISION: APPROVE**")
	assert.Contains(t, md, "Empresa Exemplo LTDA")
	assert.Contains(t, md, "R$ 500000.00")
	assert.Contains(t, md, "2026-08-31T12:00:00Z")
}

func TestRenderApproveIncludesTerms(t *testing.T) {
	md := Render(sampleReport(models.DecisionApprove), "2026-08-31T12:00:00Z")

	assert.Contains(t, md, "CDI + 2.5% p.a.")
	assert.Contains(t, md, "180 days")
	assert.Contains(t, md, "### Monitoring Plan")
}

func TestRenderDenyIncludesRationale(t *testing.T) {
	rep := sampleReport(models.DecisionDeny)
	rep.RiskAnalysis.RiskScore = 3.5
	rep.RiskAnalysis.RedFlags = []string{
		"Negative equity",
		"Defaults in payment history",
		"Current ratio below 1.0",
		"Negative working capital",
	}

	md := Render(rep, "2026-08-31T12:00:00Z")

	assert.Contains(t, md, "### Denial Rationale")
	assert.Contains(t, md, "Negative equity")
	// Only the top three limiting factors are listed.
	assert.NotContains(t, md, "Negative working capital")
	assert.NotContains(t, md, "### Suggested Terms")
}

func TestRenderNotApplicableRatios(t *testing.T) {
	rep := sampleReport(models.DecisionReview)
	rep.FinancialIndicators.Ratios.Profitability.ROE = models.ClassifiedRatio{
		Ratio:          models.NotApplicable(),
		Classification: models.ClassNotApplicable,
	}

	md := Render(rep, "2026-08-31T12:00:00Z")

	assert.Contains(t, md, "| ROE | N/A | Not Applicable |")
}

func TestRenderNoRedFlagsMessage(t *testing.T) {
	md := Render(sampleReport(models.DecisionApprove), "2026-08-31T12:00:00Z")
	assert.Contains(t, md, "No critical attention points identified.")
}

func TestRenderIsDeterministic(t *testing.T) {
	rep := sampleReport(models.DecisionApproveWithCaveats)
	first := Render(rep, "2026-08-31T12:00:00Z")
	second := Render(rep, "2026-08-31T12:00:00Z")
	assert.True(t, strings.EqualFold(first, second))
	assert.Equal(t, first, second)
}
