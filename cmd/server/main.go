package main

import (
	"os"

	"creator-station/config"
	"creator-station/internal/deps"
	"creator-station/internal/server"
	"creator-station/internal/storage"
	"creator-station/log"

	"go.uber.org/zap"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	if !config.LoadConfig() {
		return
	}
	if err := config.CheckConfig(); err != nil {
		log.GetLogger().Error("invalid configuration", zap.Error(err))
		return
	}

	storage.InitDB()

	// Any task left "running" by a previous crash is a zombie.
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("marked stale tasks as failed", zap.Int64("count", count))
	}

	if err := deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		return
	}

	if err := server.StartBackend(); err != nil {
		log.GetLogger().Error("backend exited", zap.Error(err))
		os.Exit(1)
	}
}
