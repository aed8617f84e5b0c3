package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"creator-station/internal/service"
	"creator-station/internal/taskrunner"
	"creator-station/log"
)

// TaskHandlers provides asynq handlers for the pipeline task type.
type TaskHandlers struct {
	service *service.Service
}

func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandlePipelineTask processes one full script-to-video run.
func (h *TaskHandlers) HandlePipelineTask(ctx context.Context, t *asynq.Task) error {
	var payload taskrunner.PipelineTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] processing pipeline task",
		zap.String("task_id", payload.TaskID))

	if err := h.service.ExecutePipeline(ctx, payload.TaskID, payload.Request); err != nil {
		return err
	}

	log.GetLogger().Info("[Queue] pipeline task completed",
		zap.String("task_id", payload.TaskID))
	return nil
}

// RegisterHandlers registers all task handlers with the asynq server mux.
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypePipelineTask, h.HandlePipelineTask)
}

// StartWorker starts the asynq worker loop; blocks until shutdown.
func StartWorker(q *Queue, svc *service.Service) error {
	handlers := NewTaskHandlers(svc)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] starting worker")
	return q.server.Run(mux)
}
