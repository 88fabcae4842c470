// cmd/scoring-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"credit-scoring-service/internal/artifacts"
	"credit-scoring-service/internal/common/config"
	"credit-scoring-service/internal/common/database"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/explain"
	"credit-scoring-service/internal/history"
	"credit-scoring-service/internal/pipeline"
	"credit-scoring-service/internal/scorecache"
	"credit-scoring-service/internal/scoring"
	"credit-scoring-service/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scoring server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Load the artifact bundle; the server must not start without it ---
	bundle, err := artifacts.Load(cfg.Artifacts.BundlePath)
	if err != nil {
		zapLog.Fatal("artifact bundle load failed", zap.String("path", cfg.Artifacts.BundlePath), zap.Error(err))
	}
	zapLog.Info("artifact bundle loaded",
		zap.String("path", cfg.Artifacts.BundlePath),
		zap.String("schemaVersion", bundle.SchemaVersion),
		zap.String("modelType", bundle.Model.Type),
		zap.Time("builtAt", bundle.BuiltAt),
	)

	scorer, err := scoring.FromSpec(bundle.Model)
	if err != nil {
		zapLog.Fatal("scorer construction failed", zap.Error(err))
	}

	explainCfg := explain.Config{
		PaymentHistoryWeight: cfg.Explain.PaymentHistoryWeight,
		AcademicWeight:       cfg.Explain.AcademicWeight,
		IncomeSupportWeight:  cfg.Explain.IncomeSupportWeight,
		EducationWeight:      cfg.Explain.EducationWeight,
		IncludeEducation:     cfg.Explain.IncludeEducation,
	}

	pl := pipeline.New(bundle.Tables, scorer, explainCfg, log)

	opts := server.Options{
		ScoringTimeout: time.Duration(cfg.Server.ScoringTimeout) * time.Millisecond,
	}

	// --- Init PostgreSQL with retry (optional, history store) ---
	var pgClient *database.PostgresClient
	if cfg.History.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			pgClient, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pgClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("PostgreSQL connection failed", zap.Error(err))
		}
		defer pgClient.Close()
		zapLog.Info("PostgreSQL connected")

		opts.History = history.NewStore(pgClient.DB, log)
	}

	// --- Init Redis with retry (optional, result cache) ---
	var redisClient *database.RedisClient
	if cfg.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("Redis connection failed", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected")

		opts.Cache = scorecache.New(redisClient.Client, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	}

	srv := server.New(pl, opts, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Scoring server stopped")
}
