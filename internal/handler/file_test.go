package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"creator-station/internal/appdirs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempOutputDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()

	old := appDirsResolver
	appDirsResolver = func() (appdirs.Paths, error) {
		return appdirs.Paths{OutputDir: tmp}, nil
	}
	t.Cleanup(func() { appDirsResolver = old })
	return tmp
}

func doDownload(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	h := &Handler{}
	router := gin.New()
	router.GET("/api/file/*filepath", h.DownloadFile)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestDownloadFile_ServesArtifact(t *testing.T) {
	outputDir := useTempOutputDir(t)

	taskDir := filepath.Join(outputDir, "task-1")
	require.NoError(t, os.MkdirAll(taskDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(taskDir, "creator-station.mp4"), []byte("mp4data"), 0o644))

	w := doDownload(t, "/api/file/task-1/creator-station.mp4")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mp4data", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "creator-station.mp4")
}

func TestDownloadFile_MissingFile(t *testing.T) {
	useTempOutputDir(t)

	w := doDownload(t, "/api/file/task-1/missing.mp4")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadFile_TraversalConfined(t *testing.T) {
	outputDir := useTempOutputDir(t)

	// A secret outside the output root must stay unreachable.
	secret := filepath.Join(filepath.Dir(outputDir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0o644))

	w := doDownload(t, "/api/file/../secret.txt")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
}
