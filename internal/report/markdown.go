// internal/report/markdown.go

// Package report renders a structured credit report into markdown. Rendering
// is a pure function of the report data and never feeds back into scoring.
package report

import (
	"fmt"
	"strings"

	"kyp-credit-workers/internal/models"

	"github.com/shopspring/decimal"
)

// Render produces the complete markdown document for a credit report.
// generatedAt is the pre-formatted analysis timestamp (UTC RFC3339).
func Render(rep models.Report, generatedAt string) string {
	var b strings.Builder

	writeHeader(&b, rep, generatedAt)
	writeRiskAnalysis(&b, rep.RiskAnalysis)
	writeFinancialIndicators(&b, rep.FinancialIndicators)
	writeFinalRecommendation(&b, rep)
	writeFooter(&b, generatedAt)

	return b.String()
}

func writeHeader(b *strings.Builder, rep models.Report, generatedAt string) {
	es := rep.ExecutiveSummary

	b.WriteString("# CREDIT ANALYSIS REPORT\n")
	b.WriteString("# TRADE RECEIVABLE\n\n---\n\n")
	b.WriteString("## 1. EXECUTIVE SUMMARY\n\n")
	fmt.Fprintf(b, "**Company:** %s  \n", es.Company.LegalName)
	fmt.Fprintf(b, "**Tax ID:** %s  \n", es.Company.TaxID)
	fmt.Fprintf(b, "**Sector:** %s  \n", es.Company.Sector)
	fmt.Fprintf(b, "**Receivable Amount:** %s  \n", money(es.Receivable.Amount))
	fmt.Fprintf(b, "**Due Date:** %s  \n", es.Receivable.DueDate)
	fmt.Fprintf(b, "**Analysis Date:** %s\n\n", es.AnalysisDate)
	b.WriteString("---\n\n### Assessment Overview\n\n")
	fmt.Fprintf(b, "**Risk Level:** %s (Score: %.1f/10)  \n", es.RiskLevel, es.RiskScore)
	fmt.Fprintf(b, "**Financial Health:** %.1f/10\n\n", es.HealthScore)
	fmt.Fprintf(b, "%s\n\n---\n\n", es.Summary)
}

func writeRiskAnalysis(b *strings.Builder, ra models.RiskAnalysisSection) {
	b.WriteString("## 2. RISK ANALYSIS\n\n")
	fmt.Fprintf(b, "**Risk Classification:** %s  \n", ra.RiskLevel)
	fmt.Fprintf(b, "**Risk Score:** %.1f/10\n\n", ra.RiskScore)

	b.WriteString("### Red Flags\n\n")
	if len(ra.RedFlags) == 0 {
		b.WriteString("No critical attention points identified.\n\n")
	} else {
		for i, flag := range ra.RedFlags {
			fmt.Fprintf(b, "%d. %s\n", i+1, flag)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Positive Points\n\n")
	if len(ra.PositivePoints) == 0 {
		b.WriteString("None identified.\n\n")
	} else {
		for i, point := range ra.PositivePoints {
			fmt.Fprintf(b, "%d. %s\n", i+1, point)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "### Analyst Notes\n\n%s\n\n---\n\n", ra.Recommendation)
}

func writeFinancialIndicators(b *strings.Builder, fi models.FinancialIndicatorsSection) {
	r := fi.Ratios

	b.WriteString("## 3. FINANCIAL INDICATORS\n\n")

	b.WriteString("### 3.1 Liquidity\n\n")
	b.WriteString("| Indicator | Value | Classification |\n")
	b.WriteString("|-----------|-------|----------------|\n")
	fmt.Fprintf(b, "| Current Ratio | %s | %s |\n", ratio(r.Liquidity.CurrentRatio), r.Liquidity.CurrentRatio.Classification)
	fmt.Fprintf(b, "| Quick Ratio | %s | %s |\n", ratio(r.Liquidity.QuickRatio), r.Liquidity.QuickRatio.Classification)
	fmt.Fprintf(b, "| Working Capital | %s | %s |\n\n", money(r.Liquidity.WorkingCapital.Value), r.Liquidity.WorkingCapital.Classification)

	b.WriteString("### 3.2 Profitability\n\n")
	b.WriteString("| Indicator | Value | Classification |\n")
	b.WriteString("|-----------|-------|----------------|\n")
	fmt.Fprintf(b, "| ROE | %s | %s |\n", percent(r.Profitability.ROE), r.Profitability.ROE.Classification)
	fmt.Fprintf(b, "| ROA | %s | %s |\n", percent(r.Profitability.ROA), r.Profitability.ROA.Classification)
	fmt.Fprintf(b, "| Gross Margin | %s | %s |\n", percent(r.Profitability.GrossMargin), r.Profitability.GrossMargin.Classification)
	fmt.Fprintf(b, "| Net Margin | %s | %s |\n", percent(r.Profitability.NetMargin), r.Profitability.NetMargin.Classification)
	fmt.Fprintf(b, "| EBITDA Margin | %s | %s |\n\n", percent(r.Profitability.EBITDAMargin), r.Profitability.EBITDAMargin.Classification)

	b.WriteString("### 3.3 Debt\n\n")
	b.WriteString("| Indicator | Value | Classification |\n")
	b.WriteString("|-----------|-------|----------------|\n")
	fmt.Fprintf(b, "| Debt Ratio | %s | %s |\n", percent(r.Debt.DebtRatio), r.Debt.DebtRatio.Classification)
	fmt.Fprintf(b, "| Debt to Equity | %s | %s |\n", ratio(r.Debt.DebtToEquity), r.Debt.DebtToEquity.Classification)
	fmt.Fprintf(b, "| Equity Multiplier | %s | %s |\n", ratio(r.Debt.EquityMultiplier), r.Debt.EquityMultiplier.Classification)
	fmt.Fprintf(b, "| Short-Term Debt Ratio | %s | %s |\n", percent(r.Debt.ShortTermDebtRatio), r.Debt.ShortTermDebtRatio.Classification)
	fmt.Fprintf(b, "| Interest Coverage | %s | %s |\n\n", coverage(r.Debt.InterestCoverage), r.Debt.InterestCoverage.Classification)

	if len(r.Strengths) > 0 {
		b.WriteString("**Highlights:**\n")
		for _, s := range r.Strengths {
			fmt.Fprintf(b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(r.Alerts) > 0 {
		b.WriteString("**Alerts:**\n")
		for _, a := range r.Alerts {
			fmt.Fprintf(b, "- %s\n", a)
		}
		b.WriteString("\n")
	}

	b.WriteString("### 3.4 Financial Health Score\n\n")
	fmt.Fprintf(b, "**Overall:** %.1f/10  \n", fi.HealthScore)
	fmt.Fprintf(b, "**Liquidity:** %.2f | **Profitability:** %.2f | **Leverage:** %.2f\n\n---\n\n",
		fi.Breakdown.Liquidity, fi.Breakdown.Profitability, fi.Breakdown.Debt)
}

func writeFinalRecommendation(b *strings.Builder, rep models.Report) {
	fr := rep.FinalRecommendation

	b.WriteString("## 4. FINAL RECOMMENDATION\n\n")
	fmt.Fprintf(b, "### **DECISION: %s**\n\n", fr.Decision)

	switch fr.Decision {
	case models.DecisionApprove, models.DecisionApproveWithCaveats:
		fmt.Fprintf(b, "**Approved Amount:** %s\n\n", money(rep.ExecutiveSummary.Receivable.Amount))
		b.WriteString("### Suggested Terms\n\n")
		fmt.Fprintf(b, "- **Interest Rate:** %s\n", fr.Terms.Rate)
		fmt.Fprintf(b, "- **Term:** %s\n", fr.Terms.Term)
		fmt.Fprintf(b, "- **Collateral:** %s\n\n", fr.Terms.Collateral)
		b.WriteString("### Monitoring Plan\n\n")
		for _, item := range fr.MonitoringPlan {
			fmt.Fprintf(b, "- %s\n", item)
		}
		b.WriteString("\n")

	case models.DecisionReview:
		b.WriteString("### Points to Review\n\n")
		for _, item := range fr.MonitoringPlan {
			fmt.Fprintf(b, "- %s\n", item)
		}
		b.WriteString("\n")
		fmt.Fprintf(b, "- **Collateral:** %s\n\n", fr.Terms.Collateral)

	default:
		b.WriteString("### Denial Rationale\n\n")
		fmt.Fprintf(b, "The operation presents **elevated risk** (Score: %.1f/10) outside the institution's current credit policy.\n\n",
			rep.RiskAnalysis.RiskScore)
		if len(rep.RiskAnalysis.RedFlags) > 0 {
			b.WriteString("Main limiting factors:\n")
			flags := rep.RiskAnalysis.RedFlags
			if len(flags) > 3 {
				flags = flags[:3]
			}
			for _, flag := range flags {
				fmt.Fprintf(b, "- %s\n", flag)
			}
			b.WriteString("\n")
		}
		b.WriteString("A new analysis may be requested after the highlighted indicators improve.\n\n")
	}
}

func writeFooter(b *strings.Builder, generatedAt string) {
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "**Generated At:** %s  \n", generatedAt)
	b.WriteString("**Analysis Validity:** 30 days\n\n")
	b.WriteString("*Automatically generated report - restricted to the credit committee.*\n")
}

func money(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}

func ratio(r models.ClassifiedRatio) string {
	if !r.Applicable {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

func percent(r models.ClassifiedRatio) string {
	if !r.Applicable {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", r.Value*100)
}

func coverage(r models.ClassifiedRatio) string {
	if !r.Applicable {
		return "N/A"
	}
	return fmt.Sprintf("%.1fx", r.Value)
}
