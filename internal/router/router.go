package router

import (
	"net/http"

	"creator-station/internal/handler"

	"github.com/gin-gonic/gin"
)

func SetupRouter(r *gin.Engine) {
	api := r.Group("/api")

	hdl := handler.NewHandler()
	{
		api.POST("/render", hdl.Render)

		api.POST("/script/split", hdl.SplitScript)
		api.POST("/image", hdl.GenerateImage)
		api.POST("/tts", hdl.SynthesizeSpeech)

		api.POST("/pipeline", hdl.StartPipeline)
		api.GET("/pipeline", hdl.GetPipeline)
		api.GET("/pipeline/history", hdl.GetPipelineHistory)
		api.DELETE("/pipeline/:taskId", hdl.DeletePipelineTask)
		api.GET("/pipeline/:taskId/ws", hdl.PipelineProgress)

		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)

		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
