// pkg/registry/schema.go
package registry

import "kyp-credit-workers/internal/common/validation"

// ActivityRegistry is the catalog of service tasks the worker fleet serves.
// It backs the /activities manifest endpoint and lets process modelers check
// task types and payload contracts without reading worker source.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID           string                `json:"id"`
	DisplayName  string                `json:"displayName"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	TaskType     string                `json:"taskType"`
	InputSchema  validation.JSONSchema `json:"inputSchema"`
	OutputSchema validation.JSONSchema `json:"outputSchema"`
	ErrorCodes   []string              `json:"errorCodes"`
	Timeout      string                `json:"timeout"`
	Retries      int                   `json:"retries"`
}

// FindByTaskType returns the activity registered for a Zeebe task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}
