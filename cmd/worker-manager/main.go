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

	"govmatch-workers/internal/common/camunda"
	"govmatch-workers/internal/common/config"
	"govmatch-workers/internal/common/database"
	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/common/metrics"
	"govmatch-workers/internal/common/observability"
	"govmatch-workers/internal/matching"
	"govmatch-workers/pkg/catalog"

	// Matching Workers (5)
	cms "govmatch-workers/internal/workers/matching/calculate-match-score"
	gmi "govmatch-workers/internal/workers/matching/generate-match-insights"
	ro "govmatch-workers/internal/workers/matching/record-outcome"
	re "govmatch-workers/internal/workers/matching/resolve-eligibility"
	sms "govmatch-workers/internal/workers/matching/save-match-score"

	// Opportunity Workers (3)
	eah "govmatch-workers/internal/workers/opportunity/enrich-award-history"
	so "govmatch-workers/internal/workers/opportunity/search-opportunities"
	ssg "govmatch-workers/internal/workers/opportunity/sync-sam-gov"

	// Profile Workers (2)
	uc "govmatch-workers/internal/workers/profile/update-certifications"
	vp "govmatch-workers/internal/workers/profile/validate-profile"

	// Integration Workers (2)
	scc "govmatch-workers/internal/workers/crm/sync-crm-contact"
	sn "govmatch-workers/internal/workers/notification/send-notification"
)

// runningWorkers collects every opened worker so shutdown can drain them.
var runningWorkers []*camunda.Worker

// tracer and obs are set once in main before any worker starts.
var (
	tracer *observability.Tracing
	obs    *observability.Observability
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

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs = observability.New("worker-manager")
	defer obs.Shutdown()

	tracer, err = observability.NewTracing("worker-manager", cfg.Tracing.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("tracing disabled", zap.Error(err))
	}
	defer tracer.Shutdown()

	ctx := context.Background()

	// --- Load Set-Aside Catalog ---
	var setAsideCatalog *catalog.Catalog
	if cfg.Catalog.Path != "" {
		setAsideCatalog, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			zapLog.Fatal("set-aside catalog load failed", zap.Error(err), zap.String("path", cfg.Catalog.Path))
		}
		zapLog.Info("Set-aside catalog loaded", zap.String("path", cfg.Catalog.Path))
	} else {
		setAsideCatalog = catalog.Default()
		zapLog.Info("Set-aside catalog loaded from built-in defaults")
	}

	// Weights are fixed at startup; a bad set must never score anything.
	if err := matching.DefaultWeights().Validate(); err != nil {
		zapLog.Fatal("scoring weights invalid", zap.Error(err))
	}

	outcomePolicy := matching.OutcomePolicy{
		WinThreshold:        cfg.Matching.WinThreshold,
		AccuracyStep:        cfg.Matching.AccuracyStep,
		ConfidenceStepSmall: cfg.Matching.ConfidenceStepSmall,
		ConfidenceStepLarge: cfg.Matching.ConfidenceStepLarge,
	}

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         30 * time.Second,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
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

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
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

	// --- START: Register ALL 12 Workers ---

	// --- 1. Matching Workers (5) ---
	if cfg.Workers[re.TaskType].Enabled {
		handler := re.NewHandler(
			&re.Config{
				CacheTTL: 5 * time.Minute,
				Timeout:  config.GetDuration(cfg.Workers[re.TaskType].Timeout),
			},
			setAsideCatalog, pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, re.TaskType, cfg.Workers[re.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cms.TaskType].Enabled {
		handler, err := cms.NewHandler(
			&cms.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  config.GetDuration(cfg.Workers[cms.TaskType].Timeout),
			},
			setAsideCatalog, pg.DB, redis.Client, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create calculate-match-score handler", zap.Error(err))
		}
		startWorker(zeebeClient, cms.TaskType, cfg.Workers[cms.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sms.TaskType].Enabled {
		handler := sms.NewHandler(
			&sms.Config{
				Timeout: config.GetDuration(cfg.Workers[sms.TaskType].Timeout),
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, sms.TaskType, cfg.Workers[sms.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ro.TaskType].Enabled {
		handler := ro.NewHandler(
			&ro.Config{
				Timeout: config.GetDuration(cfg.Workers[ro.TaskType].Timeout),
				Policy:  outcomePolicy,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, ro.TaskType, cfg.Workers[ro.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[gmi.TaskType].Enabled {
		handler := gmi.NewHandler(
			&gmi.Config{
				GenAIBaseURL: cfg.APIs.GenAI.BaseURL,
				APIKey:       cfg.APIs.GenAI.APIKey,
				Model:        cfg.APIs.GenAI.Model,
				Timeout:      config.GetDuration(cfg.APIs.GenAI.Timeout),
				MaxRetries:   1,
				MaxTokens:    500,
				Temperature:  0.7,
			},
			log,
		)
		startWorker(zeebeClient, gmi.TaskType, cfg.Workers[gmi.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Opportunity Workers (3) ---
	if cfg.Workers[so.TaskType].Enabled {
		handler := so.NewHandler(
			&so.Config{
				IndexName: "opportunities",
				Timeout:   config.GetDuration(cfg.Workers[so.TaskType].Timeout),
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, so.TaskType, cfg.Workers[so.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ssg.TaskType].Enabled {
		handler := ssg.NewHandler(
			&ssg.Config{
				BaseURL:   cfg.APIs.SamGov.BaseURL,
				APIKey:    cfg.APIs.SamGov.APIKey,
				IndexName: "opportunities",
				PageSize:  100,
				MaxPages:  10,
				Timeout:   config.GetDuration(cfg.Workers[ssg.TaskType].Timeout),
			},
			pg.DB, esClient.Client, log,
		)
		startWorker(zeebeClient, ssg.TaskType, cfg.Workers[ssg.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[eah.TaskType].Enabled {
		handler := eah.NewHandler(
			&eah.Config{
				BaseURL:   cfg.APIs.USASpending.BaseURL,
				CacheTTL:  24 * time.Hour,
				Timeout:   config.GetDuration(cfg.Workers[eah.TaskType].Timeout),
				MaxAwards: 50,
			},
			redis.Client, log,
		)
		startWorker(zeebeClient, eah.TaskType, cfg.Workers[eah.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Profile Workers (2) ---
	if cfg.Workers[vp.TaskType].Enabled {
		handler := vp.NewHandler(
			&vp.Config{
				Timeout: config.GetDuration(cfg.Workers[vp.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, vp.TaskType, cfg.Workers[vp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[uc.TaskType].Enabled {
		handler := uc.NewHandler(
			&uc.Config{
				Timeout: config.GetDuration(cfg.Workers[uc.TaskType].Timeout),
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, uc.TaskType, cfg.Workers[uc.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Integration Workers (2) ---
	if cfg.Workers[scc.TaskType].Enabled {
		handler := scc.NewHandler(
			&scc.Config{
				KeycloakBaseURL:      cfg.Auth.Keycloak.URL,
				KeycloakRealm:        cfg.Auth.Keycloak.Realm,
				KeycloakClientID:     cfg.Auth.Keycloak.ClientID,
				KeycloakClientSecret: cfg.Auth.Keycloak.ClientSecret,
				ZohoAPIKey:           cfg.Integrations.Zoho.APIKey,
				ZohoOAuthToken:       cfg.Integrations.Zoho.AuthToken,
				ZohoBaseURL:          cfg.Integrations.Zoho.BaseURL,
				Timeout:              config.GetDuration(cfg.Workers[scc.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, scc.TaskType, cfg.Workers[scc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      config.GetDuration(cfg.Workers[sn.TaskType].Timeout),
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("workers registered", zap.Int("count", len(runningWorkers)))

	// --- Health & Metrics Server ---
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
			status := "ready"
			code := http.StatusOK
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				status = "not_ready"
				code = http.StatusServiceUnavailable
			}
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{
				"status": status,
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range runningWorkers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc camunda.JobHandlerFunc, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	traced := func(jobClient worker.JobClient, job entities.Job) {
		ctx, span := tracer.StartJobSpan(context.Background(), taskType, job.Key)
		defer span.End()

		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		start := time.Now()
		handlerFunc(jobClient, job)
		elapsed := time.Since(start)

		metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		obs.RecordJobProcessed(ctx, taskType)
		obs.RecordJobDuration(ctx, elapsed, taskType)
	}

	w := camunda.NewWorker(client, camunda.WorkerOptions{
		TaskType:      taskType,
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
	}, traced, log)

	runningWorkers = append(runningWorkers, w)
}
