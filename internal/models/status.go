// internal/models/status.go
package models

// Stage output status values. Every stage emits exactly one of these.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StageError is the structured, machine-parseable failure record shared by all
// stages. Failures are never free-form text only.
type StageError struct {
	Status        string   `json:"status"`
	Kind          string   `json:"error"`
	Message       string   `json:"message"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
}

func NewStageError(kind, message string, invalidFields ...string) *StageError {
	return &StageError{
		Status:        StatusError,
		Kind:          kind,
		Message:       message,
		InvalidFields: invalidFields,
	}
}

func (e *StageError) Error() string {
	return e.Kind + ": " + e.Message
}
