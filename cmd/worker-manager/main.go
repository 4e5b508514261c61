// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kyp-credit-workers/internal/benchmarks"
	"kyp-credit-workers/internal/common/aws"
	"kyp-credit-workers/internal/common/camunda"
	"kyp-credit-workers/internal/common/config"
	"kyp-credit-workers/internal/common/database"
	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/common/observability"
	"kyp-credit-workers/pkg/registry"

	nd "kyp-credit-workers/internal/workers/communication/notify-decision"
	cfr "kyp-credit-workers/internal/workers/credit/calculate-financial-ratios"
	efd "kyp-credit-workers/internal/workers/credit/extract-financial-data"
	gcr "kyp-credit-workers/internal/workers/credit/generate-credit-report"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting credit analysis worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Camunda client connected successfully")

	// --- Benchmark store: Postgres + Redis, only when sector overrides are on ---
	var benchmarkStore *benchmarks.Store
	if cfg.Benchmarks.SectorOverrides {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		benchmarkStore = benchmarks.NewStore(
			pg.DB, redis.Client,
			time.Duration(cfg.Benchmarks.CacheTTLSeconds)*time.Second,
			log,
		)
	} else {
		zapLog.Info("Sector benchmark overrides disabled, using built-in defaults")
	}

	// --- Notification clients ---
	var sesClient *aws.SESClient
	var snsClient *aws.SNSClient
	if cfg.Notifications.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		if cfg.Notifications.AWS.SNS.Enabled {
			snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
		}
	}

	// --- Register pipeline workers ---
	if cfg.Workers[efd.TaskType].Enabled {
		handler := efd.NewHandler(
			&efd.Config{
				Timeout: time.Duration(cfg.Workers[efd.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, efd.TaskType, cfg.Workers[efd.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cfr.TaskType].Enabled {
		var resolver cfr.BenchmarkResolver
		if benchmarkStore != nil {
			resolver = benchmarkStore
		}
		handler := cfr.NewHandler(
			&cfr.Config{
				Timeout: time.Duration(cfg.Workers[cfr.TaskType].Timeout) * time.Millisecond,
			},
			resolver,
			log,
		)
		startWorker(zeebeClient, cfr.TaskType, cfg.Workers[cfr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gcr.TaskType].Enabled {
		handler := gcr.NewHandler(
			&gcr.Config{
				Timeout: time.Duration(cfg.Workers[gcr.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, gcr.TaskType, cfg.Workers[gcr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[nd.TaskType].Enabled {
		if sesClient == nil {
			zapLog.Fatal("notify-decision worker enabled but SES is not configured")
		}
		ndConfig := nd.LoadConfig(cfg.Notifications)
		ndConfig.Timeout = time.Duration(cfg.Workers[nd.TaskType].Timeout) * time.Millisecond
		if err := ndConfig.Validate(); err != nil {
			zapLog.Fatal("notify-decision config invalid", zap.Error(err))
		}
		deps := nd.ServiceDependencies{
			Logger: log,
			Email:  sesClient,
		}
		if snsClient != nil {
			deps.SMS = snsClient
		}
		handler := nd.NewHandler(ndConfig, deps)
		startWorker(zeebeClient, nd.TaskType, cfg.Workers[nd.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All pipeline workers registered")

	// --- Health, metrics and activity manifest server ---
	catalog := registry.DefaultCatalog()
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/activities", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(catalog)
		})
		http.Handle("/metrics", promhttp.Handler())

		addr := fmt.Sprintf(":%d", cfg.App.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Camunda client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
