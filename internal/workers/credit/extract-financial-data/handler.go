// internal/workers/credit/extract-financial-data/handler.go
package extractfinancialdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/common/metrics"
	"kyp-credit-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "extract-financial-data"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.AnalysisJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.AnalysisJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, &errors.StandardError{
			Code:      errors.ErrCodeParseError,
			Message:   fmt.Sprintf("parse input: %v", err),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	output, stageErr := h.execute(ctx, &input)
	if stageErr != nil {
		h.failJob(ctx, client, job, stageErr)
		return
	}

	metrics.AnalysisJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.AnalysisJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, *errors.StandardError) {
	if err := validate(input); err != nil {
		return nil, err
	}

	data := buildExtractedData(input)
	assessment := scoreRisk(data)

	h.logger.Info("financial data extracted", map[string]interface{}{
		"analysisId":     data.AnalysisID,
		"taxId":          data.Company.TaxID,
		"riskScore":      assessment.Score,
		"riskLevel":      assessment.Level,
		"redFlags":       len(assessment.RedFlags),
		"fieldsComplete": data.Completeness.AllFieldsPresent,
	})

	return &Output{
		Status:         models.StatusSuccess,
		ExtractedData:  data,
		RiskAssessment: assessment,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, stdErr *errors.StandardError) {
	metrics.AnalysisJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	if errors.IsValidationCode(stdErr.Code) {
		metrics.ValidationFailures.WithLabelValues(string(stdErr.Code)).Inc()
	}
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

// Execute exposes the pure pipeline step for composition in tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, *errors.StandardError) {
	return h.execute(ctx, input)
}
