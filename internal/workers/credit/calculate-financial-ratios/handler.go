// internal/workers/credit/calculate-financial-ratios/handler.go
package calculatefinancialratios

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kyp-credit-workers/internal/benchmarks"
	"kyp-credit-workers/internal/common/errors"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/common/metrics"
	"kyp-credit-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-financial-ratios"
)

// BenchmarkResolver resolves the benchmark table for a sector. Satisfied by
// *benchmarks.Store; tests substitute a fixed table.
type BenchmarkResolver interface {
	ResolveSector(ctx context.Context, sector string) benchmarks.Table
}

type Handler struct {
	config       *Config
	resolver     BenchmarkResolver
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, resolver BenchmarkResolver, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, *errors.StandardError) {
	if input.Status != models.StatusSuccess {
		return nil, errors.NewInternalError(
			fmt.Errorf("upstream extraction did not succeed (status %q)", input.Status))
	}

	table := benchmarks.Default()
	if h.resolver != nil {
		table = h.resolver.ResolveSector(ctx, input.ExtractedData.Company.Sector)
	}

	ratios, health := Calculate(input.ExtractedData, table)

	h.logger.Info("financial ratios calculated", map[string]interface{}{
		"analysisId":  input.ExtractedData.AnalysisID,
		"sector":      input.ExtractedData.Company.Sector,
		"healthScore": health.Score,
		"alerts":      len(ratios.Alerts),
		"strengths":   len(ratios.Strengths),
	})

	return &Output{
		Status: models.StatusSuccess,
		Ratios: ratios,
		Health: health,
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
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

// Execute exposes the pure pipeline step for composition in tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, *errors.StandardError) {
	return h.execute(ctx, input)
}
