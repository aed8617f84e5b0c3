// Package taskrunner executes pipeline jobs with in-memory workers. It is
// the default backend; deployments with Redis switch to the asynq queue.
package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"creator-station/internal/dto"
	"creator-station/internal/service"
	"creator-station/log"

	"go.uber.org/zap"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// PipelineTaskPayload contains everything a worker needs to run one job.
type PipelineTaskPayload struct {
	TaskID  string               `json:"task_id"`
	Request dto.StartPipelineReq `json:"request"`
}

// Runner executes queued pipeline tasks with in-memory workers.
type Runner struct {
	service *service.Service
	config  Config

	queue  chan PipelineTaskPayload
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}
	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan PipelineTaskPayload, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}
	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// Submit queues a pipeline job.
func (r *Runner) Submit(payload PipelineTaskPayload) error {
	if payload.TaskID == "" {
		return errors.New("pipeline task id is required")
	}
	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] task submitted",
			zap.String("task_id", payload.TaskID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case payload := <-r.queue:
			r.process(workerID, payload)
		}
	}
}

func (r *Runner) process(workerID int, payload PipelineTaskPayload) {
	if err := r.service.ExecutePipeline(r.ctx, payload.TaskID, payload.Request); err != nil {
		log.GetLogger().Error("[TaskRunner] task failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", payload.TaskID),
			zap.Error(err))
		return
	}
	log.GetLogger().Info("[TaskRunner] task completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", payload.TaskID))
}

// Close stops workers and rejects new tasks.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued tasks waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
