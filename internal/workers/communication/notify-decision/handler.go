// internal/workers/communication/notify-decision/handler.go
package notifydecision

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "notify-decision"
)

type Handler struct {
	config       *Config
	service      *Service
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, deps ServiceDependencies) *Handler {
	scoped := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	deps.Logger = scoped
	return &Handler{
		config:       config,
		service:      NewService(deps, config),
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

	output, stageErr := h.service.Execute(ctx, &input)
	if stageErr != nil {
		h.failJob(ctx, client, job, stageErr)
		return
	}

	metrics.AnalysisJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.AnalysisJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(ctx, client, job, output)
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
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

// Execute exposes the pure pipeline step for composition in tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, *errors.StandardError) {
	return h.service.Execute(ctx, input)
}
