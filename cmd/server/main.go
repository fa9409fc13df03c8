package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hush-backend/internal/adapters/primary/http/handlers"
	"hush-backend/internal/adapters/primary/http/middleware"
	"hush-backend/internal/adapters/secondary/postgres"
	"hush-backend/internal/adapters/secondary/prometheus"
	"hush-backend/internal/adapters/secondary/sqlite"
	"hush-backend/internal/config"
	output "hush-backend/internal/core/ports/output"
	"hush-backend/internal/core/privacy"
	"hush-backend/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)
	log.Info("server starting up")

	ctx := context.Background()

	repo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("migrate storage: %v", err)
	}
	log.WithField("driver", cfg.Database.Driver).Info("database connection established")

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	var recorder output.Recorder
	var metrics *prometheus.Recorder
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewRecorder()
		recorder = metrics
		log.Info("prometheus metrics enabled")
	}

	noise := privacy.New(cfg.Privacy)
	log.WithFields(log.Fields{
		"noise_scale": noise.Scale(),
		"clip_bound":  noise.ClipBound(),
		"seeded":      cfg.Privacy.Seed != 0,
	}).Info("laplace mechanism initialized")

	// Core Services (Application Layer)
	dashboardSvc := services.NewDashboardService(repo, recorder)
	updateSvc := services.NewUpdateService(repo, noise, cfg.Model.InitialWeights, recorder)

	if cfg.Database.SeedMockData {
		if _, err := dashboardSvc.SeedIfEmpty(ctx); err != nil {
			log.Fatalf("seed database: %v", err)
		}
	}
	if err := updateSvc.Restore(ctx); err != nil {
		log.Fatalf("restore global model: %v", err)
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(updateSvc, dashboardSvc, repo)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	h.RegisterRoutes(router.Group("/"))
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: middleware.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials)(router),
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (output.DashboardRepository, error) {
	switch cfg.Driver {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("create db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return postgres.NewDashboardRepository(pool), nil
	default:
		return sqlite.NewDashboardRepository(cfg.Path)
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
