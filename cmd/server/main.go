package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/nodebucket/backend/api/handler"
	"github.com/nodebucket/backend/internal/config"
	"github.com/nodebucket/backend/internal/infrastructure/mongodb"
	"github.com/nodebucket/backend/internal/infrastructure/monitor"
	redisInfra "github.com/nodebucket/backend/internal/infrastructure/redis"
	"github.com/nodebucket/backend/internal/middleware"
	"github.com/nodebucket/backend/internal/router"
	"github.com/nodebucket/backend/internal/services/lifecycle"
	"github.com/nodebucket/backend/pkg/httpcontext"
	"github.com/nodebucket/backend/pkg/logger"
	mongoRepo "github.com/nodebucket/backend/repository/mongodb"
	redisRepo "github.com/nodebucket/backend/repository/redis"
	authUC "github.com/nodebucket/backend/usecase/auth"
	tasksUC "github.com/nodebucket/backend/usecase/tasks"
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

	mongoClient, err := mongodb.NewClient(appCtx, cfg.Mongo, zapLogger)
	if err != nil {
		zapLogger.Fatal("mongodb connection failed", zap.Error(err))
	}
	manager.Register("mongodb", func(ctx context.Context) error {
		return mongodb.Close(ctx, mongoClient, zapLogger)
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	mon := monitor.New(mongoClient, redisClient, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	db := mongoClient.Database(cfg.Mongo.Database)
	employeeRepo := mongoRepo.NewEmployeeRepository(db, cfg.Mongo.Collection)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	taskUseCase := tasksUC.New(employeeRepo, zapLogger)
	authUseCase := authUC.New(employeeRepo, sessionRepo, cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	includeStack := !cfg.IsProduction()

	handlers := router.Handlers{
		Employee: apiHandler.NewEmployeeHandler(taskUseCase, ctxAdapter, zapLogger, includeStack),
		Security: apiHandler.NewSecurityHandler(authUseCase, ctxAdapter, zapLogger, includeStack),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	var sessionMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler
	if cfg.Session.Enforce {
		sessionMiddleware = middleware.SessionAuth(authUseCase, zapLogger)
	}
	r := router.New(handlers, sessionMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
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
