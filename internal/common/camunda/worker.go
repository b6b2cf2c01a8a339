// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandlerFunc processes a single activated job. Handlers complete or
// fail their own jobs through the supplied JobClient.
type JobHandlerFunc func(client worker.JobClient, job entities.Job)

// Worker wraps an open Zeebe job worker so it can be stopped on shutdown.
type Worker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

func NewWorker(client zbc.Client, opts WorkerOptions, handler JobHandlerFunc, logger *zap.Logger) *Worker {
	jobWorker := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	logger.Info("worker started",
		zap.String("taskType", opts.TaskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &Worker{
		worker:   jobWorker,
		logger:   logger,
		taskType: opts.TaskType,
	}
}

// Stop drains in-flight jobs and closes the worker.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}

// TaskType reports which job type this worker polls.
func (w *Worker) TaskType() string {
	return w.taskType
}
