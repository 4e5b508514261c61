// internal/workers/credit/generate-credit-report/decision.go
package generatecreditreport

import "kyp-credit-workers/internal/models"

// decisionRule is one row of the credit policy table. Rules are evaluated in
// order and the first match wins, so a record clearing both the first and
// second thresholds is approved outright.
type decisionRule struct {
	minRisk     float64
	minHealth   float64
	needsHealth bool
	decision    models.Decision
	terms       models.SuggestedTerms
	plan        []string
}

var decisionRules = []decisionRule{
	{
		minRisk:     7.0,
		minHealth:   8.0,
		needsHealth: true,
		decision:    models.DecisionApprove,
		terms: models.SuggestedTerms{
			Rate:       "CDI + 2.5% p.a.",
			Term:       "180 days",
			Collateral: "Trade receivable",
			Monitoring: "semiannual",
		},
		plan: []string{
			"Semiannual review of financial indicators",
			"Quarterly cash flow follow-up",
			"Covenant check: current ratio above 1.5, total debt below 50%, positive EBITDA",
		},
	},
	{
		minRisk:     5.0,
		minHealth:   6.0,
		needsHealth: true,
		decision:    models.DecisionApproveWithCaveats,
		terms: models.SuggestedTerms{
			Rate:       "CDI + 4.0% p.a.",
			Term:       "120 days",
			Collateral: "Trade receivable + personal guarantee from partners",
			Monitoring: "quarterly",
		},
		plan: []string{
			"Mandatory quarterly review of financial indicators",
			"Monthly cash flow follow-up",
			"Covenant check: current ratio above 1.2, total debt below 60%, EBITDA margin above 10%",
			"Automatic alerts for payments more than 5 days late",
			"Reassessment in 90 days",
		},
	},
	{
		minRisk:  4.0,
		decision: models.DecisionReview,
		terms: models.SuggestedTerms{
			Rate:       "To be defined",
			Term:       "To be defined",
			Collateral: "Real collateral required",
			Monitoring: "N/A",
		},
		plan: []string{
			"Detailed projected cash flow analysis for the next 12 months",
			"Validation of available collateral and its liquidity",
			"Assessment of the historical banking relationship",
			"Possibility of co-obligors or additional guarantors",
		},
	},
	{
		// Catch-all: risk below 4.0 is outside credit policy.
		decision: models.DecisionDeny,
		terms: models.SuggestedTerms{
			Rate:       "N/A",
			Term:       "N/A",
			Collateral: "N/A",
			Monitoring: "N/A",
		},
	},
}

func decide(riskScore, healthScore float64) decisionRule {
	for _, rule := range decisionRules {
		if riskScore < rule.minRisk {
			continue
		}
		if rule.needsHealth && healthScore < rule.minHealth {
			continue
		}
		return rule
	}
	// Unreachable: the last rule has no thresholds.
	return decisionRules[len(decisionRules)-1]
}
