package handler

import (
	"creator-station/config"
	"creator-station/internal/queue"
	"creator-station/internal/service"
	"creator-station/internal/taskrunner"
	"creator-station/log"

	"go.uber.org/zap"
)

// Handler wires HTTP endpoints to the service layer and a task backend.
type Handler struct {
	Service *service.Service
	Runner  *taskrunner.Runner
	Queue   *queue.Queue
}

// configUpdated is flipped by the config endpoint; the next request rebuilds
// the service so new credentials/endpoints take effect without a restart.
var configUpdated bool

func NewHandler() *Handler {
	svc := service.NewService()
	h := &Handler{Service: svc}

	if config.Conf.Queue.Enabled {
		h.Queue = queue.NewQueue(config.Conf.Queue)
		go func() {
			if err := queue.StartWorker(h.Queue, svc); err != nil {
				log.GetLogger().Error("queue worker exited", zap.Error(err))
			}
		}()
		log.GetLogger().Info("using asynq queue backend")
	} else {
		h.Runner = taskrunner.New(svc, taskrunner.DefaultConfig())
		log.GetLogger().Info("using in-memory task runner backend")
	}
	return h
}

func (h *Handler) refreshServiceIfNeeded() {
	if !configUpdated {
		return
	}
	log.GetLogger().Info("config updated, rebuilding service clients")
	h.Service = service.NewService()
	configUpdated = false
}
