// internal/workers/credit/extract-financial-data/service.go
package extractfinancialdata

import (
	"fmt"
	"math"

	"kyp-credit-workers/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Risk score thresholds and point values. These mirror the institution's
// deterministic credit policy; changing them changes every decision downstream.
const (
	liquidityStrong   = 1.5
	liquidityAdequate = 1.0
	liquidityMinimum  = 0.8

	latePctModerate = 0.10
	latePctHigh     = 0.30
	latePctSevere   = 0.50

	highLeverageRatio = 0.70
	criticalScoreCap  = 3.5
)

// buildExtractedData converts the validated raw input into the canonical
// extraction record: decimal money, derived totals, payment aggregates,
// derived metrics and the completeness report.
func buildExtractedData(input *Input) models.ExtractedData {
	taxID, _ := normalizeTaxID(*input.Company.TaxID)

	var missing []string
	balance, missing := buildBalanceSheet(input.Financial.BalanceSheet, missing)
	income, missing := buildIncomeStatement(input.Financial.IncomeStatement, missing)
	history, summary := buildPaymentHistory(input.Financial.PaymentHistory)

	return models.ExtractedData{
		AnalysisID: uuid.NewString(),
		Company: models.CompanyProfile{
			TaxID:     taxID,
			LegalName: *input.Company.LegalName,
			Sector:    *input.Company.Sector,
		},
		Receivable: models.Receivable{
			Amount:  decimal.NewFromFloat(*input.Receivable.Amount),
			DueDate: *input.Receivable.DueDate,
		},
		BalanceSheet:    balance,
		IncomeStatement: income,
		PaymentHistory:  history,
		History:         summary,
		Derived:         deriveMetrics(balance, history),
		Completeness: models.Completeness{
			AllFieldsPresent: len(missing) == 0,
			MissingFields:    missing,
		},
	}
}

func buildBalanceSheet(section *BalanceSheetSection, missing []string) (models.BalanceSheet, []string) {
	if section == nil {
		section = &BalanceSheetSection{}
	}

	currentAssets, missing := optionalAmount(section.CurrentAssets, "balance_sheet.current_assets", missing)
	nonCurrentAssets, missing := optionalAmount(section.NonCurrentAssets, "balance_sheet.non_current_assets", missing)
	currentLiabilities, missing := optionalAmount(section.CurrentLiabilities, "balance_sheet.current_liabilities", missing)
	nonCurrentLiabilities, missing := optionalAmount(section.NonCurrentLiabilities, "balance_sheet.non_current_liabilities", missing)
	equity, missing := optionalAmount(section.Equity, "balance_sheet.equity", missing)

	return models.BalanceSheet{
		CurrentAssets:         currentAssets,
		NonCurrentAssets:      nonCurrentAssets,
		TotalAssets:           currentAssets.Add(nonCurrentAssets),
		CurrentLiabilities:    currentLiabilities,
		NonCurrentLiabilities: nonCurrentLiabilities,
		TotalLiabilities:      currentLiabilities.Add(nonCurrentLiabilities),
		Equity:                equity,
	}, missing
}

func buildIncomeStatement(section *IncomeStatementSection, missing []string) (models.IncomeStatement, []string) {
	if section == nil {
		section = &IncomeStatementSection{}
	}

	grossRevenue, missing := optionalAmount(section.GrossRevenue, "income_statement.gross_revenue", missing)
	netRevenue, missing := optionalAmount(section.NetRevenue, "income_statement.net_revenue", missing)
	grossProfit, missing := optionalAmount(section.GrossProfit, "income_statement.gross_profit", missing)
	operatingProfit, missing := optionalAmount(section.OperatingProfit, "income_statement.operating_profit", missing)
	netProfit, missing := optionalAmount(section.NetProfit, "income_statement.net_profit", missing)
	ebitda, missing := optionalAmount(section.EBITDA, "income_statement.ebitda", missing)

	return models.IncomeStatement{
		GrossRevenue:    grossRevenue,
		NetRevenue:      netRevenue,
		GrossProfit:     grossProfit,
		OperatingProfit: operatingProfit,
		NetProfit:       netProfit,
		EBITDA:          ebitda,
	}, missing
}

// optionalAmount defaults an absent figure to zero and records it as missing.
// Absence is a warning, never an error.
func optionalAmount(v *float64, field string, missing []string) (decimal.Decimal, []string) {
	if v == nil {
		return decimal.Zero, append(missing, field)
	}
	return decimal.NewFromFloat(*v), missing
}

func buildPaymentHistory(entries []PaymentEntry) ([]models.PaymentRecord, models.HistorySummary) {
	records := make([]models.PaymentRecord, 0, len(entries))
	summary := models.HistorySummary{TotalOperations: len(entries)}

	total := decimal.Zero
	for _, entry := range entries {
		amount := decimal.Zero
		if entry.Amount != nil {
			amount = decimal.NewFromFloat(*entry.Amount)
		}
		status := inferPaymentStatus(entry.Status, entry.DaysLate)

		records = append(records, models.PaymentRecord{
			Amount:   amount,
			Status:   status,
			DaysLate: entry.DaysLate,
		})
		total = total.Add(amount)

		switch status {
		case models.PaymentPaid:
			summary.PaidOperations++
		case models.PaymentLate:
			summary.LateOperations++
		case models.PaymentDefault:
			summary.DefaultEvents++
		}
	}

	if len(entries) > 0 {
		summary.AverageTicket = total.Div(decimal.NewFromInt(int64(len(entries)))).Round(2)
	}
	return records, summary
}

func deriveMetrics(balance models.BalanceSheet, history []models.PaymentRecord) models.DerivedMetrics {
	metrics := models.DerivedMetrics{
		WorkingCapital: balance.CurrentAssets.Sub(balance.CurrentLiabilities),
		CurrentRatio:   models.NotApplicable(),
	}

	if balance.CurrentLiabilities.IsPositive() {
		ratio, _ := balance.CurrentAssets.Div(balance.CurrentLiabilities).Round(4).Float64()
		metrics.CurrentRatio = models.NewRatio(ratio)
	}

	metrics.LatePaymentPct = latePaymentPct(history)
	return metrics
}

// latePaymentPct is the share of the history value that was paid late or
// defaulted, weighted by amount. An empty history (or all-zero amounts) is 0.
func latePaymentPct(history []models.PaymentRecord) float64 {
	total := decimal.Zero
	overdue := decimal.Zero
	for _, record := range history {
		total = total.Add(record.Amount)
		if record.Status == models.PaymentLate || record.Status == models.PaymentDefault {
			overdue = overdue.Add(record.Amount)
		}
	}
	if !total.IsPositive() {
		return 0
	}
	pct, _ := overdue.Div(total).Round(4).Float64()
	return pct
}

// scoreRisk applies the deterministic credit policy over the extraction.
// Pure: same input, same assessment.
func scoreRisk(data models.ExtractedData) models.RiskAssessment {
	score := liquidityPoints(data.Derived.CurrentRatio) +
		solvencyPoints(data.BalanceSheet, data.IncomeStatement) +
		paymentPoints(data.Derived.LatePaymentPct)

	redFlags, critical := collectRedFlags(data)
	if critical {
		// Hard ceiling: critical findings force the score into DENY territory
		// regardless of how well the other dimensions did.
		score = math.Min(score, criticalScoreCap)
	}

	score = clampScore(score)
	level := classifyRisk(score)

	return models.RiskAssessment{
		Score:          score,
		Level:          level,
		RedFlags:       redFlags,
		PositivePoints: collectPositivePoints(data),
		Recommendation: recommendationFor(level),
	}
}

func liquidityPoints(currentRatio models.Ratio) float64 {
	if !currentRatio.Applicable {
		return 0
	}
	switch {
	case currentRatio.Value >= liquidityStrong:
		return 3.0
	case currentRatio.Value >= liquidityAdequate:
		return 2.0
	case currentRatio.Value >= liquidityMinimum:
		return 1.0
	default:
		return 0
	}
}

func solvencyPoints(balance models.BalanceSheet, income models.IncomeStatement) float64 {
	points := 0.0
	if balance.Equity.IsPositive() {
		points += 1.5
	}
	if income.NetProfit.IsPositive() {
		points += 1.5
	}
	return points
}

func paymentPoints(latePct float64) float64 {
	switch {
	case latePct == 0:
		return 4.0
	case latePct <= latePctModerate:
		return 2.0
	case latePct <= latePctHigh:
		return 1.0
	default:
		return 0
	}
}

// collectRedFlags returns the ordered flag list, critical findings first, and
// whether any critical condition fired.
func collectRedFlags(data models.ExtractedData) ([]string, bool) {
	var flags []string
	critical := false

	if !data.BalanceSheet.Equity.IsPositive() {
		flags = append(flags, "Negative or zero equity")
		critical = true
	}
	if data.IncomeStatement.NetProfit.IsNegative() && isHighlyLeveraged(data.BalanceSheet) {
		flags = append(flags, "Net loss combined with high leverage")
		critical = true
	}
	if data.History.DefaultEvents > 0 {
		flags = append(flags, fmt.Sprintf("Payment history contains %d default event(s)", data.History.DefaultEvents))
		critical = true
	}
	if data.Derived.LatePaymentPct > latePctSevere {
		flags = append(flags, fmt.Sprintf("Late payments exceed 50%% of history value (%.1f%%)", data.Derived.LatePaymentPct*100))
		critical = true
	}

	if data.Derived.CurrentRatio.Applicable && data.Derived.CurrentRatio.Value < liquidityAdequate {
		flags = append(flags, fmt.Sprintf("Current ratio below 1.0 (%.2f)", data.Derived.CurrentRatio.Value))
	}
	if data.Derived.WorkingCapital.IsNegative() {
		flags = append(flags, "Negative working capital")
	}
	if data.Derived.LatePaymentPct > latePctHigh && data.Derived.LatePaymentPct <= latePctSevere {
		flags = append(flags, fmt.Sprintf("Elevated late-payment share (%.1f%%)", data.Derived.LatePaymentPct*100))
	}

	return flags, critical
}

func isHighlyLeveraged(balance models.BalanceSheet) bool {
	if !balance.TotalAssets.IsPositive() {
		return false
	}
	leverage, _ := balance.TotalLiabilities.Div(balance.TotalAssets).Float64()
	return leverage > highLeverageRatio
}

func collectPositivePoints(data models.ExtractedData) []string {
	var points []string
	if data.Derived.CurrentRatio.Applicable && data.Derived.CurrentRatio.Value >= liquidityStrong {
		points = append(points, fmt.Sprintf("Strong liquidity position (current ratio %.2f)", data.Derived.CurrentRatio.Value))
	}
	if data.BalanceSheet.Equity.IsPositive() {
		points = append(points, "Positive equity")
	}
	if data.IncomeStatement.NetProfit.IsPositive() {
		points = append(points, "Positive net profit")
	}
	if data.History.TotalOperations > 0 && data.History.LateOperations == 0 && data.History.DefaultEvents == 0 {
		points = append(points, "Clean payment history")
	}
	return points
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return math.Round(score*10) / 10
}

func classifyRisk(score float64) models.RiskLevel {
	switch {
	case score >= 7.0:
		return models.RiskLow
	case score >= 4.0:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func recommendationFor(level models.RiskLevel) string {
	switch level {
	case models.RiskLow:
		return "PROCEED - adequate credit profile"
	case models.RiskMedium:
		return "REVIEW - additional analysis required"
	default:
		return "DENY - elevated risk"
	}
}
