// Package queue provides Redis-backed pipeline task processing using Asynq,
// for deployments that need persistence and retry across restarts.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"creator-station/config"
	"creator-station/internal/taskrunner"
	"creator-station/log"
)

// TypePipelineTask is the asynq task type for full pipeline runs.
const TypePipelineTask = "pipeline:render"

// Queue manages task enqueueing and processing.
type Queue struct {
	client *asynq.Client
	server *asynq.Server
}

// NewQueue creates a Queue from the application config.
func NewQueue(cfg config.QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 10s, 20s, 40s, ...
				return time.Duration(10<<uint(n)) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("[Queue] task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: asynq.NewClient(redisOpt),
		server: server,
	}
}

// EnqueuePipelineTask adds a pipeline run to the queue.
func (q *Queue) EnqueuePipelineTask(payload taskrunner.PipelineTaskPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypePipelineTask, data,
		asynq.MaxRetry(1),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}

	log.GetLogger().Info("[Queue] task enqueued",
		zap.String("task_id", payload.TaskID),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))
	return nil
}

// Close gracefully shuts down the queue.
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}
