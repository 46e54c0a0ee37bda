package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tutor-center/backend/config"
	"tutor-center/backend/internal/api/handler"
	"tutor-center/backend/internal/api/router"
	"tutor-center/backend/internal/dto"
	"tutor-center/backend/internal/repository"
	"tutor-center/backend/internal/service"
	"tutor-center/backend/pkg/database"
	"tutor-center/backend/pkg/jwt"
	applogger "tutor-center/backend/pkg/logger"
	"tutor-center/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	// 1. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("center", cfg.Center.Name),
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis is optional; without it logout does not revoke and rate limits are off
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. wiring: Repository -> Service -> Handler
	if err := dto.RegisterValidators(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.EnsureAdmin(bootCtx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword); err != nil {
		logger.Fatal("bootstrap admin", zap.Error(err))
	}
	bootCancel()

	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 6. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
