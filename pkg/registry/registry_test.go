// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"kyp-credit-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogCoversPipeline(t *testing.T) {
	catalog := DefaultCatalog()

	taskTypes := []string{
		"extract-financial-data",
		"calculate-financial-ratios",
		"generate-credit-report",
		"notify-decision",
	}
	require.Len(t, catalog.Activities, len(taskTypes))

	for _, taskType := range taskTypes {
		activity, ok := catalog.FindByTaskType(taskType)
		require.True(t, ok, "missing activity for %s", taskType)
		assert.NotEmpty(t, activity.ID)
		assert.NotEmpty(t, activity.InputSchema.Properties)
		assert.NotEmpty(t, activity.ErrorCodes)
		assert.NoError(t, validation.ValidateActivityNaming(activity.ID))
	}
}

func TestFindByTaskTypeUnknown(t *testing.T) {
	_, ok := DefaultCatalog().FindByTaskType("no-such-task")
	assert.False(t, ok)
}

func TestExtractInputSchemaValidation(t *testing.T) {
	activity, ok := DefaultCatalog().FindByTaskType("extract-financial-data")
	require.True(t, ok)

	valid := map[string]interface{}{
		"company":    map[string]interface{}{"tax_id": "12345678000190", "legal_name": "Empresa Exemplo LTDA"},
		"receivable": map[string]interface{}{"amount": 150000.0, "due_date": "2026-12-01"},
		"financial":  map[string]interface{}{},
	}
	result := validation.ValidateInput(valid, activity.InputSchema)
	assert.True(t, result.Valid, "errors: %v", result.GetErrorMessages())

	missing := map[string]interface{}{
		"company": map[string]interface{}{"tax_id": "12345678000190", "legal_name": "Empresa Exemplo LTDA"},
	}
	result = validation.ValidateInput(missing, activity.InputSchema)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("receivable"))
	assert.True(t, result.HasErrors("financial"))
}

func TestLoadWithoutPathReturnsBuiltinCatalog(t *testing.T) {
	catalog, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Version, catalog.Version)
}
