// internal/workers/credit/generate-credit-report/schema.go
package generatecreditreport

import (
	"fmt"
	"time"

	"kyp-credit-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// upstreamSchema guards the synthesis stage against partially-populated
// process state (e.g. a process model that skipped the ratio stage). The
// decision table must never run on absent scores.
var upstreamSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"status", "extracted_data", "risk_analysis", "financial_ratios", "health"},
	"properties": map[string]interface{}{
		"status": map[string]interface{}{"type": "string"},
		"extracted_data": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"analysis_id", "company", "receivable"},
		},
		"risk_analysis": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"risk_score", "risk_level"},
			"properties": map[string]interface{}{
				"risk_score": map[string]interface{}{"type": "number"},
				"risk_level": map[string]interface{}{"type": "string"},
			},
		},
		"financial_ratios": map[string]interface{}{"type": "object"},
		"health": map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"financial_health_score"},
			"properties": map[string]interface{}{
				"financial_health_score": map[string]interface{}{"type": "number"},
			},
		},
	},
}

func validateUpstream(variables map[string]interface{}) *errors.StandardError {
	schemaLoader := gojsonschema.NewGoLoader(upstreamSchema)
	documentLoader := gojsonschema.NewGoLoader(variables)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &errors.StandardError{
			Code:      errors.ErrCodeParseError,
			Message:   fmt.Sprintf("upstream payload validation: %v", err),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return &errors.StandardError{
			Code:      errors.ErrCodeParseError,
			Message:   "upstream payload incomplete",
			Details:   fmt.Sprintf("%v", details),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}
	}

	return nil
}
