package handler

import (
	"creator-station/internal/dto"
	"creator-station/internal/response"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) SplitScript(c *gin.Context) {
	var req dto.SplitScriptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("SplitScript param error", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()
	data, err := h.Service.SplitScript(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) GenerateImage(c *gin.Context) {
	var req dto.GenerateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("GenerateImage param error", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()
	data, err := h.Service.GenerateImage(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) SynthesizeSpeech(c *gin.Context) {
	var req dto.SynthesizeSpeechReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("SynthesizeSpeech param error", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	h.refreshServiceIfNeeded()
	data, err := h.Service.SynthesizeSpeech(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}
