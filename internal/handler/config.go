package handler

import (
	"strings"

	"creator-station/config"
	"creator-station/internal/response"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// configView is the externally visible config subset; secrets are masked.
type configView struct {
	Server  config.ServerConfig `json:"server"`
	LlmBase string              `json:"llm_base_url"`
	LlmKey  string              `json:"llm_api_key"`
	Image   string              `json:"image_model"`
	Voice   string              `json:"tts_voice"`
	Render  config.RenderConfig `json:"render"`
}

type updateConfigReq struct {
	LlmBaseUrl   *string `json:"llm_base_url"`
	LlmApiKey    *string `json:"llm_api_key"`
	LlmModel     *string `json:"llm_model"`
	ImageApiKey  *string `json:"image_api_key"`
	ImageModel   *string `json:"image_model"`
	TtsApiKey    *string `json:"tts_api_key"`
	TtsVoice     *string `json:"tts_voice"`
	RenderConcur *int    `json:"render_concurrency"`
}

func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, configView{
		Server:  config.Conf.Server,
		LlmBase: config.Conf.Llm.BaseUrl,
		LlmKey:  maskSecret(config.Conf.Llm.ApiKey),
		Image:   config.Conf.Image.Model,
		Voice:   config.Conf.Tts.Voice,
		Render:  config.Conf.Render,
	})
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "invalid parameters", err))
		return
	}

	applyIfSet(&config.Conf.Llm.BaseUrl, req.LlmBaseUrl)
	applyIfSet(&config.Conf.Llm.ApiKey, req.LlmApiKey)
	applyIfSet(&config.Conf.Llm.Model, req.LlmModel)
	applyIfSet(&config.Conf.Image.ApiKey, req.ImageApiKey)
	applyIfSet(&config.Conf.Image.Model, req.ImageModel)
	applyIfSet(&config.Conf.Tts.ApiKey, req.TtsApiKey)
	applyIfSet(&config.Conf.Tts.Voice, req.TtsVoice)
	if req.RenderConcur != nil && *req.RenderConcur > 0 {
		config.Conf.Render.Concurrency = *req.RenderConcur
	}

	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("cannot save config", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "cannot save config", err))
		return
	}

	configUpdated = true
	response.Success(c, nil)
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		if s == "" {
			return ""
		}
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
