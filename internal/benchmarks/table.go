// internal/benchmarks/table.go
package benchmarks

import (
	"kyp-credit-workers/internal/models"
)

// Metric names used as keys in a BenchmarkTable. They match the JSON field
// names of the ratio set so overrides can be stored and inspected uniformly.
const (
	MetricCurrentRatio       = "current_ratio"
	MetricQuickRatio         = "quick_ratio"
	MetricROE                = "roe"
	MetricROA                = "roa"
	MetricGrossMargin        = "gross_margin"
	MetricNetMargin          = "net_margin"
	MetricEBITDAMargin       = "ebitda_margin"
	MetricInterestCoverage   = "interest_coverage"
	MetricDebtRatio          = "debt_ratio"
	MetricDebtToEquity       = "debt_to_equity"
	MetricEquityMultiplier   = "equity_multiplier"
	MetricShortTermDebtRatio = "short_term_debt_ratio"
)

// Thresholds defines the three classification cut points for one metric.
// For a higher-is-better metric a value classifies into the first tier whose
// threshold it meets (value >= threshold); lower-is-better metrics invert the
// comparison (value <= threshold).
type Thresholds struct {
	Excellent     float64 `json:"excellent"`
	Good          float64 `json:"good"`
	Adequate      float64 `json:"adequate"`
	LowerIsBetter bool    `json:"lower_is_better"`
}

// Classify maps a ratio onto a qualitative tier. Not-applicable ratios are
// never classified against thresholds.
func (t Thresholds) Classify(r models.Ratio) models.Classification {
	if !r.Applicable {
		return models.ClassNotApplicable
	}
	if t.LowerIsBetter {
		switch {
		case r.Value <= t.Excellent:
			return models.ClassExcellent
		case r.Value <= t.Good:
			return models.ClassGood
		case r.Value <= t.Adequate:
			return models.ClassAdequate
		default:
			return models.ClassBelowExpected
		}
	}
	switch {
	case r.Value >= t.Excellent:
		return models.ClassExcellent
	case r.Value >= t.Good:
		return models.ClassGood
	case r.Value >= t.Adequate:
		return models.ClassAdequate
	default:
		return models.ClassBelowExpected
	}
}

// Table holds the full set of benchmark thresholds keyed by metric name.
type Table map[string]Thresholds

// Classify looks up the metric's thresholds and classifies the ratio.
// Unknown metrics classify as Not Applicable rather than guessing a tier.
func (tb Table) Classify(metric string, r models.Ratio) models.Classification {
	t, ok := tb[metric]
	if !ok {
		return models.ClassNotApplicable
	}
	return t.Classify(r)
}

// Merge returns a copy of the table with the given overrides applied on top.
func (tb Table) Merge(overrides Table) Table {
	merged := make(Table, len(tb))
	for k, v := range tb {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Default returns the sector-agnostic benchmark table. Sector-specific rows
// loaded from storage are merged over these values.
func Default() Table {
	return Table{
		MetricCurrentRatio:       {Excellent: 2.0, Good: 1.5, Adequate: 1.0},
		MetricQuickRatio:         {Excellent: 1.5, Good: 1.2, Adequate: 1.0},
		MetricROE:                {Excellent: 0.20, Good: 0.15, Adequate: 0.10},
		MetricROA:                {Excellent: 0.10, Good: 0.07, Adequate: 0.05},
		MetricGrossMargin:        {Excellent: 0.40, Good: 0.30, Adequate: 0.20},
		MetricNetMargin:          {Excellent: 0.20, Good: 0.15, Adequate: 0.05},
		MetricEBITDAMargin:       {Excellent: 0.25, Good: 0.15, Adequate: 0.08},
		MetricInterestCoverage:   {Excellent: 5.0, Good: 3.0, Adequate: 2.0},
		MetricDebtRatio:          {Excellent: 0.35, Good: 0.50, Adequate: 0.70, LowerIsBetter: true},
		MetricDebtToEquity:       {Excellent: 0.50, Good: 1.0, Adequate: 2.0, LowerIsBetter: true},
		MetricEquityMultiplier:   {Excellent: 1.7, Good: 2.0, Adequate: 2.5, LowerIsBetter: true},
		MetricShortTermDebtRatio: {Excellent: 0.30, Good: 0.45, Adequate: 0.60, LowerIsBetter: true},
	}
}
