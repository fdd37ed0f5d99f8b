package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskpad/taskpad/api/handler"
	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/infrastructure/mongodb"
	"github.com/taskpad/taskpad/internal/infrastructure/monitor"
	"github.com/taskpad/taskpad/internal/router"
	"github.com/taskpad/taskpad/internal/services/lifecycle"
	"github.com/taskpad/taskpad/pkg/httpcontext"
	"github.com/taskpad/taskpad/pkg/logger"
	"github.com/taskpad/taskpad/repository"
	boltRepo "github.com/taskpad/taskpad/repository/bolt"
	mongoRepo "github.com/taskpad/taskpad/repository/mongo"
	taskUC "github.com/taskpad/taskpad/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// A store that cannot be reached at startup is fatal; serving with a
	// broken backing store is worse than not serving.
	var (
		taskRepo repository.TaskRepository
		pinger   monitor.Pinger
	)
	switch cfg.Store.Driver {
	case config.DriverBolt:
		store, err := boltRepo.Open(cfg.Store.BoltPath)
		if err != nil {
			zapLogger.Fatal("bolt store open failed", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		taskRepo = store
		pinger = store
	default:
		client, err := mongodb.Connect(appCtx, cfg.Mongo, zapLogger)
		if err != nil {
			zapLogger.Fatal("mongodb connection failed", zap.Error(err))
		}
		manager.Register("mongodb", func(ctx context.Context) error {
			return client.Close(ctx)
		})
		taskRepo = mongoRepo.NewTaskRepository(client.Tasks())
		pinger = client
	}

	mon := monitor.New(pinger, cfg.Store.Driver, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskUseCase := taskUC.New(taskRepo, zapLogger)
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	server := &fasthttp.Server{
		Handler:      router.New(handlers, zapLogger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
