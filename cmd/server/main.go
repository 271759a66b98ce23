// Package main is the entry point for the stockmaster API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockmaster/internal/config"
	"stockmaster/internal/core/auth"
	v1 "stockmaster/internal/infrastructure/http/v1"
	"stockmaster/internal/infrastructure/refgen"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockmaster server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	postgres.RegisterPoolMetrics(pool)
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Reference generator ---
	// Backed by the pool directly: counters are bumped outside business
	// transactions, so a rolled-back validation burns a number instead of
	// reusing it.
	refGen := refgen.New(pool.Unwrap())

	// --- JWT validation ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})

	// --- Audit ---
	var auditService *postgres.AuditService
	if cfg.Audit.Enabled {
		auditService, err = postgres.NewAuditService(txManager)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		TxManager:    txManager,
		Logger:       log,
		JWTValidator: jwtService,
		RefGen:       refGen,
		Audit:        auditService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
