package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"usecase-catalog-be/internal/bootstrap"
	"usecase-catalog-be/internal/config"
	"usecase-catalog-be/internal/model"
	"usecase-catalog-be/internal/pkg/logger"
	"usecase-catalog-be/internal/server"
	"usecase-catalog-be/internal/tracer"
	"usecase-catalog-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction(), cfg.App.LogLevel)
	defer sysLogger.Sync()

	if cfg.Security.APISecretKey == "" {
		sysLogger.Warn("SERVER", "API_SECRET_KEY is not set, POST /use-cases is unauthenticated", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(ctx, cfg.Tracing, cfg.App.Environment, sysLogger)

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		sysLogger.Error("SERVER", "Unable to connect to database", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		if err := model.Migrate(gormDB); err != nil {
			sysLogger.Error("SERVER", "Migration failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		sysLogger.Info("SERVER", "Database migrated", nil)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("SERVER", "Failed to start consumer", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// 6. Run Server until a signal arrives
	srv := server.New(cfg, container)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			sysLogger.Error("SERVER", "Server stopped unexpectedly", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		sysLogger.Info("SERVER", "Shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Error("SERVER", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	container.Close()
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("SERVER", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	sysLogger.Info("SERVER", "Server stopped", nil)
}
