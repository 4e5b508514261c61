// internal/workers/credit/extract-financial-data/handler_test.go
package extractfinancialdata

import (
	"context"
	"testing"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func createHealthyInput() *Input {
	return &Input{
		Company: &CompanySection{
			TaxID:     sptr("12.345.678/0001-90"),
			LegalName: sptr("Empresa Exemplo LTDA"),
			Sector:    sptr("retail"),
		},
		Receivable: &ReceivableSection{
			Amount:  fptr(150000),
			DueDate: sptr("2026-12-01"),
		},
		Financial: &FinancialSection{
			BalanceSheet: &BalanceSheetSection{
				CurrentAssets:         fptr(500000),
				NonCurrentAssets:      fptr(300000),
				CurrentLiabilities:    fptr(200000),
				NonCurrentLiabilities: fptr(150000),
				Equity:                fptr(450000),
			},
			IncomeStatement: &IncomeStatementSection{
				GrossRevenue:    fptr(1200000),
				NetRevenue:      fptr(1000000),
				GrossProfit:     fptr(400000),
				OperatingProfit: fptr(250000),
				NetProfit:       fptr(180000),
				EBITDA:          fptr(280000),
			},
			PaymentHistory: []PaymentEntry{
				{Amount: fptr(50000), Status: "PAID", DaysLate: 0},
				{Amount: fptr(70000), Status: "PAID", DaysLate: 0},
			},
		},
	}
}

// ==========================
// Scoring Tests
// ==========================

func TestExecuteHealthyCompanyScoresMaximum(t *testing.T) {
	handler := newTestHandler(t)

	output, stageErr := handler.Execute(context.Background(), createHealthyInput())
	require.Nil(t, stageErr)

	assert.Equal(t, models.StatusSuccess, output.Status)
	// 3.0 liquidity + 1.5 equity + 1.5 profit + 4.0 clean history
	assert.Equal(t, 10.0, output.RiskAssessment.Score)
	assert.Equal(t, models.RiskLow, output.RiskAssessment.Level)
	assert.Empty(t, output.RiskAssessment.RedFlags)
	assert.Contains(t, output.RiskAssessment.PositivePoints, "Clean payment history")
	assert.Equal(t, "PROCEED - adequate credit profile", output.RiskAssessment.Recommendation)
}

func TestExecuteNegativeEquityCapsScore(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.BalanceSheet.Equity = fptr(-50000)

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	// Liquidity and history alone would score 7.0; the critical flag caps it.
	assert.Equal(t, 3.5, output.RiskAssessment.Score)
	assert.Equal(t, models.RiskHigh, output.RiskAssessment.Level)
	assert.Contains(t, output.RiskAssessment.RedFlags, "Negative or zero equity")
}

func TestExecuteCapIsCeilingNotFloor(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.BalanceSheet.Equity = fptr(-50000)
	input.Financial.BalanceSheet.CurrentAssets = fptr(100000)
	input.Financial.BalanceSheet.CurrentLiabilities = fptr(200000)
	input.Financial.IncomeStatement.NetProfit = fptr(-80000)
	input.Financial.PaymentHistory = []PaymentEntry{
		{Amount: fptr(50000), Status: "DEFAULT", DaysLate: 120},
	}

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	// Raw score is already 0; the cap must not raise it to 3.5.
	assert.Equal(t, 0.0, output.RiskAssessment.Score)
	assert.Equal(t, models.RiskHigh, output.RiskAssessment.Level)
}

func TestExecuteDefaultEventIsCritical(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.PaymentHistory = []PaymentEntry{
		{Amount: fptr(90000), Status: "PAID", DaysLate: 0},
		{Amount: fptr(10000), Status: "DEFAULT", DaysLate: 90},
	}

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.LessOrEqual(t, output.RiskAssessment.Score, 3.5)
	assert.Equal(t, models.RiskHigh, output.RiskAssessment.Level)
	assert.Contains(t, output.RiskAssessment.RedFlags, "Payment history contains 1 default event(s)")
}

func TestExecuteEmptyHistoryEarnsFullPaymentPoints(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.PaymentHistory = nil

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.Equal(t, 10.0, output.RiskAssessment.Score)
	assert.Zero(t, output.ExtractedData.Derived.LatePaymentPct)
	// No history means no "clean history" positive point.
	assert.NotContains(t, output.RiskAssessment.PositivePoints, "Clean payment history")
}

func TestExecuteLatePaymentTiers(t *testing.T) {
	tests := []struct {
		name          string
		history       []PaymentEntry
		expectedScore float64
	}{
		{
			name: "five percent late scores two payment points",
			history: []PaymentEntry{
				{Amount: fptr(95000), Status: "PAID"},
				{Amount: fptr(5000), Status: "LATE", DaysLate: 15},
			},
			expectedScore: 8.0,
		},
		{
			name: "twenty percent late scores one payment point",
			history: []PaymentEntry{
				{Amount: fptr(80000), Status: "PAID"},
				{Amount: fptr(20000), Status: "LATE", DaysLate: 30},
			},
			expectedScore: 7.0,
		},
		{
			name: "forty percent late scores zero payment points",
			history: []PaymentEntry{
				{Amount: fptr(60000), Status: "PAID"},
				{Amount: fptr(40000), Status: "LATE", DaysLate: 45},
			},
			expectedScore: 6.0,
		},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createHealthyInput()
			input.Financial.PaymentHistory = tt.history

			output, stageErr := handler.Execute(context.Background(), input)
			require.Nil(t, stageErr)
			assert.Equal(t, tt.expectedScore, output.RiskAssessment.Score)
		})
	}
}

func TestExecuteSevereLateShareIsCritical(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.PaymentHistory = []PaymentEntry{
		{Amount: fptr(40000), Status: "PAID"},
		{Amount: fptr(60000), Status: "LATE", DaysLate: 60},
	}

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.LessOrEqual(t, output.RiskAssessment.Score, 3.5)
	assert.Contains(t, output.RiskAssessment.RedFlags[0], "exceed 50%")
}

func TestExecuteZeroCurrentLiabilitiesRatioNotApplicable(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.BalanceSheet.CurrentLiabilities = fptr(0)

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.False(t, output.ExtractedData.Derived.CurrentRatio.Applicable)
	// No liquidity points, but no liquidity red flag either.
	assert.Equal(t, 7.0, output.RiskAssessment.Score)
	assert.Empty(t, output.RiskAssessment.RedFlags)
}

// ==========================
// Validation Tests
// ==========================

func TestExecuteMissingSections(t *testing.T) {
	handler := newTestHandler(t)

	_, stageErr := handler.Execute(context.Background(), &Input{})
	require.NotNil(t, stageErr)

	assert.Equal(t, errors.ErrCodeMissingSection, stageErr.Code)
	assert.ElementsMatch(t, []string{"company", "receivable", "financial"},
		stageErr.Metadata["invalidFields"])
}

func TestExecuteInvalidTaxID(t *testing.T) {
	tests := []struct {
		name  string
		taxID string
		valid bool
	}{
		{"formatted cnpj", "12.345.678/0001-90", true},
		{"bare digits", "12345678000190", true},
		{"thirteen digits", "1234567800019", false},
		{"fifteen digits", "123456780001901", false},
		{"letters", "12.345.67a/0001-90", false},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := createHealthyInput()
			input.Company.TaxID = sptr(tt.taxID)

			output, stageErr := handler.Execute(context.Background(), input)
			if tt.valid {
				require.Nil(t, stageErr)
				assert.Equal(t, "12345678000190", output.ExtractedData.Company.TaxID)
			} else {
				require.NotNil(t, stageErr)
				assert.Equal(t, errors.ErrCodeInvalidTaxID, stageErr.Code)
			}
		})
	}
}

func TestExecuteInvalidDueDate(t *testing.T) {
	tests := []string{"01/12/2026", "2026-13-01", "not-a-date", "2026-02-30"}

	handler := newTestHandler(t)
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			input := createHealthyInput()
			input.Receivable.DueDate = sptr(raw)

			_, stageErr := handler.Execute(context.Background(), input)
			require.NotNil(t, stageErr)
			assert.Equal(t, errors.ErrCodeInvalidDate, stageErr.Code)
		})
	}
}

func TestExecuteNonPositiveReceivableAmount(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Receivable.Amount = fptr(0)

	_, stageErr := handler.Execute(context.Background(), input)
	require.NotNil(t, stageErr)
	assert.Equal(t, errors.ErrCodeInvalidValue, stageErr.Code)
	assert.Contains(t, stageErr.Metadata["invalidFields"], "receivable.amount")
}

func TestExecuteNegativeBalanceSheetValue(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.BalanceSheet.CurrentAssets = fptr(-1000)

	_, stageErr := handler.Execute(context.Background(), input)
	require.NotNil(t, stageErr)
	assert.Equal(t, errors.ErrCodeInvalidValue, stageErr.Code)
	assert.Contains(t, stageErr.Metadata["invalidFields"], "balance_sheet.current_assets")
}

func TestExecuteNegativeProfitLinesAreAllowed(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.IncomeStatement.NetProfit = fptr(-10000)
	input.Financial.IncomeStatement.OperatingProfit = fptr(-5000)

	_, stageErr := handler.Execute(context.Background(), input)
	assert.Nil(t, stageErr)
}

// ==========================
// Extraction Tests
// ==========================

func TestExecuteDerivesTotals(t *testing.T) {
	handler := newTestHandler(t)

	output, stageErr := handler.Execute(context.Background(), createHealthyInput())
	require.Nil(t, stageErr)

	bs := output.ExtractedData.BalanceSheet
	assert.Equal(t, "800000", bs.TotalAssets.String())
	assert.Equal(t, "350000", bs.TotalLiabilities.String())
	assert.Equal(t, "300000", output.ExtractedData.Derived.WorkingCapital.String())
	assert.Equal(t, 2.5, output.ExtractedData.Derived.CurrentRatio.Value)
}

func TestExecuteCompletenessTracksMissingFields(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.IncomeStatement.EBITDA = nil
	input.Financial.BalanceSheet.NonCurrentAssets = nil

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	assert.False(t, output.ExtractedData.Completeness.AllFieldsPresent)
	assert.Contains(t, output.ExtractedData.Completeness.MissingFields, "income_statement.ebitda")
	assert.Contains(t, output.ExtractedData.Completeness.MissingFields, "balance_sheet.non_current_assets")
	// Missing optional figures default to zero, never fail.
	assert.True(t, output.ExtractedData.IncomeStatement.EBITDA.IsZero())
}

func TestExecuteGeneratesAnalysisID(t *testing.T) {
	handler := newTestHandler(t)

	first, stageErr := handler.Execute(context.Background(), createHealthyInput())
	require.Nil(t, stageErr)
	second, stageErr := handler.Execute(context.Background(), createHealthyInput())
	require.Nil(t, stageErr)

	assert.NotEmpty(t, first.ExtractedData.AnalysisID)
	assert.NotEqual(t, first.ExtractedData.AnalysisID, second.ExtractedData.AnalysisID)
}

func TestInferPaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		daysLate int
		expected models.PaymentStatus
	}{
		{"explicit paid", "PAID", 0, models.PaymentPaid},
		{"portuguese paid", "pago", 0, models.PaymentPaid},
		{"explicit late", "LATE", 12, models.PaymentLate},
		{"portuguese late", "ATRASADO", 5, models.PaymentLate},
		{"explicit default", "DEFAULT", 120, models.PaymentDefault},
		{"portuguese default", "inadimplente", 200, models.PaymentDefault},
		{"unknown with days late", "pending", 3, models.PaymentLate},
		{"unknown without days late", "pending", 0, models.PaymentPaid},
		{"paid label wins over days late", "PAID", 10, models.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferPaymentStatus(tt.status, tt.daysLate))
		})
	}
}

func TestExecuteHistoryAggregates(t *testing.T) {
	handler := newTestHandler(t)

	input := createHealthyInput()
	input.Financial.PaymentHistory = []PaymentEntry{
		{Amount: fptr(100000), Status: "PAID"},
		{Amount: fptr(50000), Status: "LATE", DaysLate: 20},
		{Amount: fptr(30000), Status: "PAID"},
	}

	output, stageErr := handler.Execute(context.Background(), input)
	require.Nil(t, stageErr)

	h := output.ExtractedData.History
	assert.Equal(t, 3, h.TotalOperations)
	assert.Equal(t, 2, h.PaidOperations)
	assert.Equal(t, 1, h.LateOperations)
	assert.Zero(t, h.DefaultEvents)
	assert.True(t, h.AverageTicket.Equal(decimal.NewFromInt(60000)))
}
