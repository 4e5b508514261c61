// pkg/registry/catalog.go
package registry

import "kyp-credit-workers/internal/common/validation"

// DefaultCatalog describes the four service tasks of the credit analysis
// pipeline in deployment order. Schemas cover the top-level payload contract;
// field-level semantics live with the workers.
func DefaultCatalog() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0",
		LastUpdated: "2026-08-01",
		Activities: []Activity{
			{
				ID:          "credit.analysis.extract",
				DisplayName: "Extract Financial Data",
				Description: "Validates the analysis request, normalizes the tax id, derives balance totals and scores counterparty risk",
				Category:    "credit",
				TaskType:    "extract-financial-data",
				InputSchema: validation.JSONSchema{
					Type:     "object",
					Required: []string{"company", "receivable", "financial"},
					Properties: map[string]validation.Property{
						"company": {
							Type:        "object",
							Description: "Company identification: tax id, legal name, sector",
							Required:    []string{"tax_id", "legal_name"},
						},
						"receivable": {
							Type:        "object",
							Description: "Trade receivable under analysis: amount and due date",
							Required:    []string{"amount", "due_date"},
						},
						"financial": {
							Type:        "object",
							Description: "Balance sheet, income statement and payment history",
						},
					},
					AdditionalProperties: true,
				},
				OutputSchema: validation.JSONSchema{
					Type: "object",
					Properties: map[string]validation.Property{
						"status":         {Type: "string", Enum: []string{"success", "error"}},
						"extracted_data": {Type: "object", Description: "Normalized financial records with derived totals"},
						"risk_analysis":  {Type: "object", Description: "Risk score, level, red flags and positive points"},
					},
					AdditionalProperties: true,
				},
				ErrorCodes: []string{"missing_section", "invalid_tax_id", "invalid_date", "invalid_value", "parse_error"},
				Timeout:    "30s",
				Retries:    3,
			},
			{
				ID:          "credit.analysis.ratios",
				DisplayName: "Calculate Financial Ratios",
				Description: "Computes liquidity, profitability and debt ratios, classifies them against sector benchmarks and scores financial health",
				Category:    "credit",
				TaskType:    "calculate-financial-ratios",
				InputSchema: validation.JSONSchema{
					Type:     "object",
					Required: []string{"status", "extracted_data"},
					Properties: map[string]validation.Property{
						"status":         {Type: "string", Enum: []string{"success", "error"}},
						"extracted_data": {Type: "object"},
					},
					AdditionalProperties: true,
				},
				OutputSchema: validation.JSONSchema{
					Type: "object",
					Properties: map[string]validation.Property{
						"status":           {Type: "string", Enum: []string{"success", "error"}},
						"financial_ratios": {Type: "object", Description: "Classified ratios with alerts and strengths"},
						"health":           {Type: "object", Description: "Financial health score with category breakdown"},
					},
					AdditionalProperties: true,
				},
				ErrorCodes: []string{"internal_error", "benchmark_lookup_failed", "parse_error"},
				Timeout:    "30s",
				Retries:    3,
			},
			{
				ID:          "credit.analysis.report",
				DisplayName: "Generate Credit Report",
				Description: "Applies the credit policy decision table and renders the four-section analysis report",
				Category:    "credit",
				TaskType:    "generate-credit-report",
				InputSchema: validation.JSONSchema{
					Type:     "object",
					Required: []string{"status", "extracted_data", "risk_analysis", "financial_ratios", "health"},
					Properties: map[string]validation.Property{
						"status":           {Type: "string", Enum: []string{"success", "error"}},
						"extracted_data":   {Type: "object"},
						"risk_analysis":    {Type: "object"},
						"financial_ratios": {Type: "object"},
						"health":           {Type: "object"},
					},
					AdditionalProperties: true,
				},
				OutputSchema: validation.JSONSchema{
					Type: "object",
					Properties: map[string]validation.Property{
						"status":          {Type: "string", Enum: []string{"success", "error"}},
						"final_decision":  {Type: "string", Enum: []string{"APPROVE", "APPROVE_WITH_CAVEATS", "REVIEW", "DENY"}},
						"credit_report":   {Type: "object", Description: "Structured four-section report"},
						"report":          {Type: "string", Description: "Rendered markdown document"},
						"report_metadata": {Type: "object"},
					},
					AdditionalProperties: true,
				},
				ErrorCodes: []string{"internal_error", "parse_error"},
				Timeout:    "30s",
				Retries:    3,
			},
			{
				ID:          "credit.communication.notify",
				DisplayName: "Notify Decision",
				Description: "Delivers the rendered report to the credit desk by email and optionally texts the decision summary",
				Category:    "communication",
				TaskType:    "notify-decision",
				InputSchema: validation.JSONSchema{
					Type:     "object",
					Required: []string{"status", "final_decision", "report"},
					Properties: map[string]validation.Property{
						"status":               {Type: "string", Enum: []string{"success", "error"}},
						"final_decision":       {Type: "string"},
						"credit_report":        {Type: "object"},
						"report":               {Type: "string"},
						"notification_contact": {Type: "object"},
					},
					AdditionalProperties: true,
				},
				OutputSchema: validation.JSONSchema{
					Type: "object",
					Properties: map[string]validation.Property{
						"status":     {Type: "string", Enum: []string{"success", "error"}},
						"email_sent": {Type: "boolean"},
						"sms_sent":   {Type: "boolean"},
					},
					AdditionalProperties: true,
				},
				ErrorCodes: []string{"notification_send_failed", "internal_error", "parse_error"},
				Timeout:    "30s",
				Retries:    3,
			},
		},
	}
}
