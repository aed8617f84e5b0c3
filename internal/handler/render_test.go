package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creator-station/config"
	"creator-station/internal/dto"
	"creator-station/internal/service"
	"creator-station/log"
	"creator-station/pkg/ffmpegexec"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	log.InitLogger()
}

func newRenderTestHandler(t *testing.T) *Handler {
	t.Helper()
	config.Conf.Render.WorkDir = t.TempDir()
	config.Conf.Render.Concurrency = 1
	return &Handler{
		Service: &service.Service{
			Runner: ffmpegexec.NewRunner("/nonexistent/ffmpeg", "/nonexistent/ffprobe", time.Second),
		},
	}
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
}

func newMultipartBody(t *testing.T) *multipartBody {
	b := &multipartBody{}
	b.writer = multipart.NewWriter(&b.buf)
	t.Cleanup(func() { b.writer.Close() })
	return b
}

func (b *multipartBody) field(t *testing.T, name, value string) *multipartBody {
	t.Helper()
	require.NoError(t, b.writer.WriteField(name, value))
	return b
}

func (b *multipartBody) file(t *testing.T, field, name, content string) *multipartBody {
	t.Helper()
	part, err := b.writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	return b
}

func (b *multipartBody) request(t *testing.T) *http.Request {
	t.Helper()
	require.NoError(t, b.writer.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/render", &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func doRender(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router := gin.New()
	router.POST("/api/render", h.Render)
	router.ServeHTTP(w, req)
	return w
}

func decodeRenderError(t *testing.T, w *httptest.ResponseRecorder) dto.RenderErrorRes {
	t.Helper()
	var res dto.RenderErrorRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRender_MissingManifest(t *testing.T) {
	h := newRenderTestHandler(t)

	req := newMultipartBody(t).
		file(t, "images", "a.png", "img").
		request(t)
	w := doRender(t, h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeRenderError(t, w)
	assert.False(t, res.Ok)
	assert.Contains(t, res.Error, "manifest")
}

func TestRender_DuplicateManifestFields(t *testing.T) {
	h := newRenderTestHandler(t)

	req := newMultipartBody(t).
		field(t, "manifest", `{"scenes": [{"duration_sec": 5}]}`).
		field(t, "manifest", `{"scenes": [{"duration_sec": 6}]}`).
		file(t, "images", "a.png", "img").
		request(t)
	w := doRender(t, h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeRenderError(t, w).Ok)
}

func TestRender_AssetCountMismatchReturns400(t *testing.T) {
	h := newRenderTestHandler(t)

	req := newMultipartBody(t).
		field(t, "manifest", `{"scenes": [{"duration_sec": 5}, {"duration_sec": 6}]}`).
		file(t, "images", "a.png", "img").
		request(t)
	w := doRender(t, h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeRenderError(t, w)
	assert.False(t, res.Ok)
	assert.Contains(t, res.Error, "manifest validation failed")
}

func TestRender_InvalidDurationReturns400(t *testing.T) {
	h := newRenderTestHandler(t)

	req := newMultipartBody(t).
		field(t, "manifest", `{"scenes": [{"duration_sec": 0.5}]}`).
		file(t, "images", "a.png", "img").
		request(t)
	w := doRender(t, h, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeRenderError(t, w).Error, "duration_sec")
}

func TestRender_EncoderFailureReturns500(t *testing.T) {
	h := newRenderTestHandler(t)

	req := newMultipartBody(t).
		field(t, "manifest", `{"scenes": [{"duration_sec": 5}]}`).
		file(t, "images", "a.png", "img").
		request(t)
	w := doRender(t, h, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	res := decodeRenderError(t, w)
	assert.False(t, res.Ok)
	assert.Contains(t, res.Error, "segment encoding failed")
}
