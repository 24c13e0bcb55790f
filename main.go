package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "time/tzdata"

	"estate/src/api"
	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/utils"
	redis_utils "estate/src/utils/redis"
	"estate/src/worker"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

	errC, err := run(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Couldn't run")
		return
	}

	if err := <-errC; err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)
	ctx := utils.WithLogger(context.Background(), logger)

	var cacheHandler redis_utils.CacheHandlerI
	if cfg.Cache.Enabled {
		redisHandler, err := redis_utils.NewRedisHandler(ctx, cfg.Cache)
		if err != nil {
			return nil, err
		}
		cacheHandler = redisHandler
	}

	client, err := sheets.NewClient(ctx, cfg, cacheHandler)
	if err != nil {
		return nil, err
	}

	var httpServer *http.Server
	switch cfg.Service.Type {
	case config.WORKER:
		server, err := worker.NewServer(cfg, client, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server, cfg.Service.Port)
	default:
		server, err := api.NewServer(cfg, client, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server, cfg.Service.Port)
	}

	go func() {
		logger.Infof("Starting %s server on port %s", cfg.Service.Type, cfg.Service.Port)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
