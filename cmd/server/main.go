package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanban-api/internal/config"
	"github.com/yukikurage/kanban-api/internal/database"
	"github.com/yukikurage/kanban-api/internal/logger"
	"github.com/yukikurage/kanban-api/internal/server"
	"github.com/yukikurage/kanban-api/internal/storage"
)

const serviceName = "kanban-api"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(serviceName, logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	store, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage")
	}

	r := server.NewRouter(cfg, log, store)

	// Start server
	log.WithFields(logrus.Fields{
		"addr":    cfg.Addr(),
		"storage": cfg.StorageDriver,
	}).Info("Server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// openStore returns the file store, or a database-backed store for the sql drivers
func openStore(cfg *config.Config, log *logrus.Logger) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverFile {
		return storage.NewFileStore(cfg.DataDir, log)
	}

	// Connect to database
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	return storage.NewGormStore(db, log), nil
}
