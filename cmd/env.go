package cmd

import (
	"fmt"

	"docker-up/core/config"
	"docker-up/core/database"
	"docker-up/core/docker"
	"docker-up/core/history"
	"docker-up/core/logger"
	"docker-up/core/storage"
	"docker-up/feature/stack"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env holds the collaborators shared by every command.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	docker  docker.Client
	store   storage.Client
	history history.Recorder
	db      *gorm.DB
}

// newEnv loads configuration and wires the clients. Object storage and
// history are optional: a disabled section leaves them unset, a failing
// database only logs a warning.
func newEnv() (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := docker.NewClient(cfg.Docker)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	e := &env{cfg: cfg, log: l, docker: client, history: history.Nop{}}

	if cfg.Storage.Enabled {
		if e.store, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			l.Warn("Optional database connection failed, history is disabled", zap.Error(err))
			return e, nil
		}
		recorder := history.NewGormRecorder(db)
		if err := recorder.Migrate(); err != nil {
			l.Warn("History table migration failed, history is disabled", zap.Error(err))
			return e, nil
		}
		e.db = db
		e.history = recorder
		l.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
	}

	return e, nil
}

// service builds the stack service on the env's clients.
func (e *env) service() *stack.Service {
	return stack.NewService(e.docker, e.store, e.history, e.log)
}

// Close releases the database connection and flushes the logger.
func (e *env) Close() {
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = e.log.Sync()
}
