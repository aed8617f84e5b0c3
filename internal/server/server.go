package server

import (
	"fmt"

	"creator-station/config"
	"creator-station/internal/router"
	"creator-station/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartBackend runs the HTTP API; blocks until the listener fails.
func StartBackend() error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = 64 << 20 // staged to disk beyond this

	router.SetupRouter(engine)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("starting backend", zap.String("addr", addr))
	return engine.Run(addr)
}
