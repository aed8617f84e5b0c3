package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"creator-station/internal/dto"
	"creator-station/internal/service"
	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render accepts a multipart submission (images, optional audios, manifest)
// and streams back the assembled MP4 as a download. Errors use the
// {ok:false, error} shape instead of the standard envelope because the
// success path is a binary body.
func (h *Handler) Render(c *gin.Context) {
	h.refreshServiceIfNeeded()

	form, err := c.MultipartForm()
	if err != nil {
		renderError(c, http.StatusBadRequest, "cannot parse multipart form: "+err.Error())
		return
	}

	manifestValues := form.Value["manifest"]
	if len(manifestValues) != 1 {
		renderError(c, http.StatusBadRequest, "exactly one manifest field is required")
		return
	}

	input := service.RenderInput{
		ManifestJSON: []byte(manifestValues[0]),
		Images:       uploadsFromHeaders(form.File["images"]),
		Audios:       uploadsFromHeaders(form.File["audios"]),
	}

	video, err := h.Service.Render(c.Request.Context(), input)
	if err != nil {
		log.GetLogger().Error("render request failed", zap.Error(err))
		status := http.StatusInternalServerError
		if apperrors.IsClientFault(err) {
			status = http.StatusBadRequest
		}
		renderError(c, status, apperrors.GetMessage(err)+detailSuffix(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+types.OutputFileName+`"`)
	c.Data(http.StatusOK, "video/mp4", video)
}

func renderError(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.RenderErrorRes{Ok: false, Error: msg})
}

func detailSuffix(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Detail != "" {
		return ": " + appErr.Detail
	}
	return ""
}

func uploadsFromHeaders(headers []*multipart.FileHeader) []service.Upload {
	uploads := make([]service.Upload, 0, len(headers))
	for _, header := range headers {
		header := header
		uploads = append(uploads, service.Upload{
			Name: header.Filename,
			Open: func() (io.ReadCloser, error) { return header.Open() },
		})
	}
	return uploads
}
