package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"creator-station/internal/appdirs"
	"creator-station/internal/response"
	apperrors "creator-station/pkg/errors"

	"github.com/gin-gonic/gin"
)

var appDirsResolver = appdirs.Resolve

// DownloadFile serves a pipeline artifact from the output directory. Paths
// are confined to that directory; traversal attempts get 404.
func (h *Handler) DownloadFile(c *gin.Context) {
	requestedFile := strings.TrimPrefix(c.Param("filepath"), "/")
	if requestedFile == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "file path is empty"))
		return
	}

	dirs, err := appDirsResolver()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "cannot resolve output directory", err))
		return
	}

	outputRoot, err := filepath.Abs(dirs.OutputDir)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "cannot resolve output directory", err))
		return
	}

	localFilePath := filepath.Join(outputRoot, filepath.Clean("/"+requestedFile))
	if !strings.HasPrefix(localFilePath, outputRoot+string(os.PathSeparator)) {
		c.JSON(http.StatusNotFound, response.FromError(apperrors.ErrFileNotFound))
		return
	}

	if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, response.FromError(apperrors.ErrFileNotFound))
		return
	}
	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}
