package main

import (
	"database/sql"
	"expvar"
	"os"
	"runtime"
	"time"

	"github.com/emzola/biblioteca/config"
	"github.com/emzola/biblioteca/handler"
	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/emzola/biblioteca/repository"
	"github.com/emzola/biblioteca/repository/postgres"
	"github.com/emzola/biblioteca/service"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	service service.Service
	handler *handler.Handler
}

// @title  Biblioteca API
// @version 1.0.0
// @description This is an API service for managing a catalogue of books.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	logger = jsonlog.New(os.Stdout, cfg.LogLevel())

	// Initialize storage
	repo, db, err := openRepository(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	if db != nil {
		defer db.Close()
		logger.PrintInfo("database connection pool established", nil)
	} else {
		logger.PrintInfo("using in-memory storage", nil)
	}

	publishMetrics(db)

	// Per-client rate limiters, evicted after three idle minutes
	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](3 * time.Minute))
	go limiters.Start()
	defer limiters.Stop()

	// Application layers
	service := service.New(logger, repo)
	handler := handler.New(cfg, logger, limiters, service)

	app := &app{
		config:  cfg,
		logger:  logger,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openRepository returns the book store selected by the storage driver. The
// *sql.DB is nil for the memory driver.
func openRepository(cfg config.Config) (repository.Repository, *sql.DB, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return repository.NewMemory(), nil, nil
	}
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.New(db, cfg.QueryTimeout()), db, nil
}

func publishMetrics(db *sql.DB) {
	expvar.NewString("version").Set(handler.Version)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	if db != nil {
		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))
	}

	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))
}
