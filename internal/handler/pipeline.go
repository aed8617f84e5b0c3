package handler

import (
	"net/http"
	"os"
	"time"

	"creator-station/internal/dto"
	"creator-station/internal/response"
	"creator-station/internal/storage"
	"creator-station/internal/taskrunner"
	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func (h *Handler) StartPipeline(c *gin.Context) {
	var req dto.StartPipelineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartPipeline param error", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()
	data, err := h.Service.CreatePipelineTask(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}

	payload := taskrunner.PipelineTaskPayload{TaskID: data.TaskId, Request: req}
	if h.Queue != nil {
		err = h.Queue.EnqueuePipelineTask(payload)
	} else {
		err = h.Runner.Submit(payload)
	}
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "cannot submit task", err))
		return
	}
	response.Success(c, data)
}

func (h *Handler) GetPipeline(c *gin.Context) {
	var req dto.GetPipelineReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	task, err := storage.GetTask(req.TaskId)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeNotFound, "task not found", err))
		return
	}
	response.Success(c, task)
}

func (h *Handler) GetPipelineHistory(c *gin.Context) {
	tasks, err := storage.GetTaskHistory(200)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "cannot load history", err))
		return
	}
	response.Success(c, tasks)
}

func (h *Handler) DeletePipelineTask(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	// Remove artifacts first; a failed disk cleanup still allows record
	// deletion.
	if basePath, err := storage.TaskBasePath(taskId); err == nil {
		if err := os.RemoveAll(basePath); err != nil {
			log.GetLogger().Warn("cannot remove task artifacts",
				zap.String("taskId", taskId),
				zap.Error(err))
		}
	}

	if err := storage.DeleteTask(taskId); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeDBError, "cannot delete task", err))
		return
	}
	response.Success(c, nil)
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PipelineProgress pushes task progress over a websocket until the task
// reaches a terminal state or the client goes away.
func (h *Handler) PipelineProgress(c *gin.Context) {
	taskId := c.Param("taskId")
	if taskId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "taskId is required"))
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.GetLogger().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		task, err := storage.GetTask(taskId)
		if err != nil {
			_ = conn.WriteJSON(dto.PipelineProgressMsg{
				TaskId:     taskId,
				Status:     types.PipelineTaskStatusFailed,
				FailReason: "task not found",
			})
			return
		}

		msg := dto.PipelineProgressMsg{
			TaskId:     task.TaskId,
			Status:     task.Status,
			StatusMsg:  task.StatusMsg,
			ProcessPct: task.ProcessPct,
			FailReason: task.FailReason,
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
		if task.Status == types.PipelineTaskStatusDone || task.Status == types.PipelineTaskStatusFailed {
			return
		}
	}
}
