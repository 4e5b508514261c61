// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes. The validation and
// computation kinds double as the wire-level `error` field of stage outputs,
// so their values are lowercase.
type ErrorCode string

// Validation errors (stage 1; halt the pipeline, never retried)
const (
	ErrCodeMissingSection ErrorCode = "missing_section"
	ErrCodeInvalidTaxID   ErrorCode = "invalid_tax_id"
	ErrCodeInvalidDate    ErrorCode = "invalid_date"
	ErrCodeInvalidValue   ErrorCode = "invalid_value"
)

// Computation errors (any stage; caught at the stage boundary)
const (
	ErrCodeInternalError ErrorCode = "internal_error"
)

// Infrastructure errors (outside the deterministic core)
const (
	ErrCodeBenchmarkLookupFailed  ErrorCode = "benchmark_lookup_failed"
	ErrCodeNotificationSendFailed ErrorCode = "notification_send_failed"
	ErrCodeParseError             ErrorCode = "parse_error"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// BPMNErrorMapping maps internal codes to the codes BPMN boundary events catch.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMissingSection:         "VALIDATION_FAILED",
	ErrCodeInvalidTaxID:           "VALIDATION_FAILED",
	ErrCodeInvalidDate:            "VALIDATION_FAILED",
	ErrCodeInvalidValue:           "VALIDATION_FAILED",
	ErrCodeInternalError:          "ANALYSIS_FAILED",
	ErrCodeBenchmarkLookupFailed:  "BENCHMARK_LOOKUP_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
	ErrCodeParseError:             "PARSE_ERROR",
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable stage-1 validation error. The
// invalid fields end up in the stage output and in the BPMN error variables.
func NewValidationError(code ErrorCode, message string, invalidFields []string) *StandardError {
	var meta map[string]interface{}
	if len(invalidFields) > 0 {
		meta = map[string]interface{}{"invalidFields": invalidFields}
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Metadata:  meta,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected computation fault. The pipeline never
// surfaces these as uncaught failures.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected error during analysis",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBenchmarkLookupError creates a retryable benchmark store error.
func NewBenchmarkLookupError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBenchmarkLookupFailed,
		Message:   "Failed to resolve sector benchmarks",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendError creates a retryable delivery error.
func NewNotificationSendError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to deliver decision notification",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"channel": channel},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry Policy
// ==========================

// GetRetryCount returns how many times a failed job with this code should be
// retried before the error is thrown to the process.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeBenchmarkLookupFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	default:
		return 0 // Validation and analysis errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = strings.ToUpper(string(stdErr.Code)) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsValidationCode reports whether the code belongs to the stage-1 validation
// taxonomy (the kinds that halt the pipeline before any extraction output).
func IsValidationCode(code ErrorCode) bool {
	switch code {
	case ErrCodeMissingSection, ErrCodeInvalidTaxID, ErrCodeInvalidDate, ErrCodeInvalidValue:
		return true
	default:
		return false
	}
}
