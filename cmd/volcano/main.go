package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/volcano/internal/catalogcache"
	"github.com/xxxsen/volcano/internal/catalogsource"
	"github.com/xxxsen/volcano/internal/config"
	"github.com/xxxsen/volcano/internal/db"
	"github.com/xxxsen/volcano/internal/handler"
	"github.com/xxxsen/volcano/internal/job"
	"github.com/xxxsen/volcano/internal/middleware"
	"github.com/xxxsen/volcano/internal/repo"
	"github.com/xxxsen/volcano/internal/schedule"
	"github.com/xxxsen/volcano/internal/seed"
	"github.com/xxxsen/volcano/internal/service"
)

func main() {
	var configPath string
	var seedKey string
	var seedBatch int

	rootCmd := &cobra.Command{
		Use:   "volcano",
		Short: "volcano information backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (optional, env overrides)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the api server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServer(cfg, conn)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			logutil.GetLogger(context.Background()).Info("schema up to date")
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "load the volcano catalog from a csv file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seedKey == "" {
				return fmt.Errorf("--key is required")
			}
			cfg, conn, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			src, err := catalogsource.New(cfg.CatalogSource)
			if err != nil {
				return fmt.Errorf("init catalog source: %w", err)
			}
			importer := seed.NewImporter(repo.NewVolcanoRepo(conn), seedBatch)
			_, err = importer.Run(cmd.Context(), src, seedKey)
			return err
		},
	}
	seedCmd.Flags().StringVar(&seedKey, "key", "", "catalog object key, e.g. volcanoes.csv")
	seedCmd.Flags().IntVar(&seedBatch, "batch", 0, "rows per insert statement")

	rootCmd.AddCommand(runCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func bootstrap(configPath string) (*config.Config, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, conn, nil
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.Int("catalog_cache_size", cfg.CatalogCache.Size),
		zap.Int("rate_limit_seconds", cfg.RateLimitSeconds),
	)

	userRepo := repo.NewUserRepo(conn)
	reviewRepo := repo.NewReviewRepo(conn)
	volcanoRepo := repo.NewVolcanoRepo(conn)
	volcanoStore := catalogcache.WrapLruCacheToVolcanoStore(
		volcanoRepo,
		cfg.CatalogCache.Size,
		time.Duration(cfg.CatalogCache.TTLSeconds)*time.Second,
	)

	secret := []byte(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, secret, time.Hour*time.Duration(cfg.JWTTTLHours))
	profileService := service.NewProfileService(userRepo)
	volcanoService := service.NewVolcanoService(volcanoStore)
	reviewService := service.NewReviewService(reviewRepo, userRepo)

	meta, err := handler.NewMetaHandler(cfg.About, volcanoRepo)
	if err != nil {
		return err
	}
	deps := handler.RouterDeps{
		Users:     handler.NewUserHandler(authService, profileService),
		Volcanoes: handler.NewVolcanoHandler(volcanoService),
		Reviews:   handler.NewReviewHandler(reviewService),
		Meta:      meta,
		JWTSecret: secret,
		RateLimit: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.AccessLog(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	healthJob := job.NewDBHealthJob(conn, 5*time.Second)
	if err := scheduler.AddJob(healthJob, cfg.HealthCheckCron); err != nil {
		return fmt.Errorf("schedule %s: %w", healthJob.Name(), err)
	}
	if err := scheduler.RunNow(ctx, healthJob.Name()); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
