// internal/workers/credit/calculate-financial-ratios/engine.go
package calculatefinancialratios

import (
	"fmt"
	"math"

	"kyp-credit-workers/internal/benchmarks"
	"kyp-credit-workers/internal/models"

	"github.com/shopspring/decimal"
)

// estimatedInterestRate approximates interest expense as a share of total
// liabilities when the statement carries no explicit interest line.
const estimatedInterestRate = 0.10

// Calculate computes the full classified ratio set and the financial health
// score over a validated extraction. Pure: repeated runs over the same
// extraction and table produce identical output.
func Calculate(data models.ExtractedData, table benchmarks.Table) (models.RatioSet, models.HealthScore) {
	set := models.RatioSet{
		Liquidity:     liquidityRatios(data, table),
		Profitability: profitabilityRatios(data, table),
		Debt:          debtRatios(data, table),
	}
	set.Alerts, set.Strengths = collectFindings(set)

	health := healthScore(set)
	return set, health
}

func liquidityRatios(data models.ExtractedData, table benchmarks.Table) models.LiquidityRatios {
	current := classify(table, benchmarks.MetricCurrentRatio, data.Derived.CurrentRatio)

	// Inventory is not captured in the extraction, so the quick ratio falls
	// back to the current ratio (conservative upper bound).
	quick := classify(table, benchmarks.MetricQuickRatio, data.Derived.CurrentRatio)

	wcClass := models.ClassGood
	if data.Derived.WorkingCapital.IsNegative() {
		wcClass = models.ClassBelowExpected
	}

	return models.LiquidityRatios{
		CurrentRatio: current,
		QuickRatio:   quick,
		WorkingCapital: models.ClassifiedAmount{
			Value:          data.Derived.WorkingCapital,
			Classification: wcClass,
		},
	}
}

func profitabilityRatios(data models.ExtractedData, table benchmarks.Table) models.ProfitabilityRatios {
	equity := data.BalanceSheet.Equity
	assets := data.BalanceSheet.TotalAssets
	revenue := data.IncomeStatement.NetRevenue

	return models.ProfitabilityRatios{
		ROE:          classify(table, benchmarks.MetricROE, guardedDiv(data.IncomeStatement.NetProfit, equity)),
		ROA:          classify(table, benchmarks.MetricROA, guardedDiv(data.IncomeStatement.NetProfit, assets)),
		GrossMargin:  classify(table, benchmarks.MetricGrossMargin, guardedDiv(data.IncomeStatement.GrossProfit, revenue)),
		NetMargin:    classify(table, benchmarks.MetricNetMargin, guardedDiv(data.IncomeStatement.NetProfit, revenue)),
		EBITDAMargin: classify(table, benchmarks.MetricEBITDAMargin, guardedDiv(data.IncomeStatement.EBITDA, revenue)),
	}
}

func debtRatios(data models.ExtractedData, table benchmarks.Table) models.DebtRatios {
	bs := data.BalanceSheet

	return models.DebtRatios{
		DebtRatio:          classify(table, benchmarks.MetricDebtRatio, guardedDiv(bs.TotalLiabilities, bs.TotalAssets)),
		DebtToEquity:       classify(table, benchmarks.MetricDebtToEquity, guardedDiv(bs.TotalLiabilities, bs.Equity)),
		EquityMultiplier:   classify(table, benchmarks.MetricEquityMultiplier, guardedDiv(bs.TotalAssets, bs.Equity)),
		ShortTermDebtRatio: classify(table, benchmarks.MetricShortTermDebtRatio, guardedDiv(bs.CurrentLiabilities, bs.TotalLiabilities)),
		InterestCoverage:   classify(table, benchmarks.MetricInterestCoverage, interestCoverage(data)),
	}
}

// interestCoverage estimates interest expense from total liabilities. The
// numerator is operating profit, falling back to net profit when the operating
// line was absent from the input.
func interestCoverage(data models.ExtractedData) models.Ratio {
	estimatedInterest := data.BalanceSheet.TotalLiabilities.Mul(decimal.NewFromFloat(estimatedInterestRate))
	if !estimatedInterest.IsPositive() {
		return models.NotApplicable()
	}

	numerator := data.IncomeStatement.OperatingProfit
	if fieldMissing(data.Completeness, "income_statement.operating_profit") {
		numerator = data.IncomeStatement.NetProfit
	}
	return guardedDiv(numerator, estimatedInterest)
}

func fieldMissing(c models.Completeness, field string) bool {
	for _, f := range c.MissingFields {
		if f == field {
			return true
		}
	}
	return false
}

// guardedDiv divides rounding to 4 decimal places; a zero or negative
// denominator yields a not-applicable ratio instead of a sentinel value.
func guardedDiv(num, den decimal.Decimal) models.Ratio {
	if !den.IsPositive() {
		return models.NotApplicable()
	}
	v, _ := num.Div(den).Round(4).Float64()
	return models.NewRatio(v)
}

func classify(table benchmarks.Table, metric string, r models.Ratio) models.ClassifiedRatio {
	return models.ClassifiedRatio{
		Ratio:          r,
		Classification: table.Classify(metric, r),
	}
}

// finding describes one classified metric for alert/strength generation; the
// list fixes iteration order so output is stable.
type finding struct {
	label    string
	headline bool // Good classification also counts as a strength
	percent  bool
	ratio    models.ClassifiedRatio
}

func collectFindings(set models.RatioSet) (alerts, strengths []string) {
	findings := []finding{
		{"Current ratio", true, false, set.Liquidity.CurrentRatio},
		{"Quick ratio", false, false, set.Liquidity.QuickRatio},
		{"ROE", true, true, set.Profitability.ROE},
		{"ROA", false, true, set.Profitability.ROA},
		{"Gross margin", false, true, set.Profitability.GrossMargin},
		{"Net margin", false, true, set.Profitability.NetMargin},
		{"EBITDA margin", true, true, set.Profitability.EBITDAMargin},
		{"Debt ratio", true, true, set.Debt.DebtRatio},
		{"Debt to equity", false, false, set.Debt.DebtToEquity},
		{"Equity multiplier", false, false, set.Debt.EquityMultiplier},
		{"Short-term debt ratio", false, true, set.Debt.ShortTermDebtRatio},
		{"Interest coverage", false, false, set.Debt.InterestCoverage},
	}

	for _, f := range findings {
		switch f.ratio.Classification {
		case models.ClassBelowExpected:
			alerts = append(alerts, fmt.Sprintf("%s below expected (%s)", f.label, formatValue(f.ratio, f.percent)))
		case models.ClassExcellent:
			strengths = append(strengths, fmt.Sprintf("%s excellent (%s)", f.label, formatValue(f.ratio, f.percent)))
		case models.ClassGood:
			if f.headline {
				strengths = append(strengths, fmt.Sprintf("%s good (%s)", f.label, formatValue(f.ratio, f.percent)))
			}
		}
	}

	if set.Liquidity.WorkingCapital.Classification == models.ClassBelowExpected {
		alerts = append(alerts, "Negative working capital")
	}
	return alerts, strengths
}

func formatValue(r models.ClassifiedRatio, percent bool) string {
	if percent {
		return fmt.Sprintf("%.1f%%", r.Value*100)
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// categoryStats feeds the health score: each category contributes
// (10/3) * (applicable - belowExpected) / applicable, or 0 when nothing in the
// category is applicable.
type categoryStats struct {
	applicable int
	below      int
}

func (c categoryStats) contribution() float64 {
	if c.applicable == 0 {
		return 0
	}
	return (10.0 / 3.0) * float64(c.applicable-c.below) / float64(c.applicable)
}

func (c *categoryStats) add(class models.Classification) {
	if class == models.ClassNotApplicable {
		return
	}
	c.applicable++
	if class == models.ClassBelowExpected {
		c.below++
	}
}

func healthScore(set models.RatioSet) models.HealthScore {
	var liq, prof, debt categoryStats

	liq.add(set.Liquidity.CurrentRatio.Classification)
	liq.add(set.Liquidity.QuickRatio.Classification)
	liq.add(set.Liquidity.WorkingCapital.Classification)

	prof.add(set.Profitability.ROE.Classification)
	prof.add(set.Profitability.ROA.Classification)
	prof.add(set.Profitability.GrossMargin.Classification)
	prof.add(set.Profitability.NetMargin.Classification)
	prof.add(set.Profitability.EBITDAMargin.Classification)

	debt.add(set.Debt.DebtRatio.Classification)
	debt.add(set.Debt.DebtToEquity.Classification)
	debt.add(set.Debt.EquityMultiplier.Classification)
	debt.add(set.Debt.ShortTermDebtRatio.Classification)
	debt.add(set.Debt.InterestCoverage.Classification)

	breakdown := models.HealthBreakdown{
		Liquidity:     round2(liq.contribution()),
		Profitability: round2(prof.contribution()),
		Debt:          round2(debt.contribution()),
	}

	score := liq.contribution() + prof.contribution() + debt.contribution()
	score = math.Round(math.Min(math.Max(score, 0), 10)*10) / 10

	return models.HealthScore{
		Score:     score,
		Breakdown: breakdown,
		Summary:   summaryText(score, set),
	}
}

func summaryText(score float64, set models.RatioSet) string {
	return fmt.Sprintf("Overall financial health scores %.1f/10. Liquidity is %s, profitability is %s and leverage is %s.",
		score,
		worstLiquidity(set.Liquidity),
		worstProfitability(set.Profitability),
		worstDebt(set.Debt))
}

// severity orders classifications from worst to best for summary labels.
var severity = map[models.Classification]int{
	models.ClassBelowExpected: 0,
	models.ClassAdequate:      1,
	models.ClassGood:          2,
	models.ClassExcellent:     3,
}

func worstOf(classes ...models.Classification) models.Classification {
	worst := models.ClassNotApplicable
	rank := len(severity)
	for _, c := range classes {
		r, ok := severity[c]
		if !ok {
			continue // not applicable, excluded
		}
		if r < rank {
			rank = r
			worst = c
		}
	}
	return worst
}

func worstLiquidity(l models.LiquidityRatios) models.Classification {
	return worstOf(l.CurrentRatio.Classification, l.QuickRatio.Classification, l.WorkingCapital.Classification)
}

func worstProfitability(p models.ProfitabilityRatios) models.Classification {
	return worstOf(p.ROE.Classification, p.ROA.Classification, p.GrossMargin.Classification,
		p.NetMargin.Classification, p.EBITDAMargin.Classification)
}

func worstDebt(d models.DebtRatios) models.Classification {
	return worstOf(d.DebtRatio.Classification, d.DebtToEquity.Classification, d.EquityMultiplier.Classification,
		d.ShortTermDebtRatio.Classification, d.InterestCoverage.Classification)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
