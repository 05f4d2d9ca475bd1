package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-broker-tracker/internal/tracker/config"
	delivery "golang-broker-tracker/internal/tracker/delivery/http"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/internal/tracker/service"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/postgres"
	"golang-broker-tracker/pkg/redis"
	"golang-broker-tracker/pkg/telegram"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

// app bundles the wired dependencies shared by the subcommands.
type app struct {
	cfg               *config.Config
	logger            *logger.Logger
	db                *postgres.DB
	redisClient       *redis.Client
	ratingRepo        repository.RatingRepository
	ingestionRunRepo  repository.IngestionRunRepository
	ingestionService  service.IngestionService
	masterListService service.MasterListService
	close             func()
}

func buildApp(withRedis bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	if err := applyMigrations(postgresCfg); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var redisClient *redis.Client
	if withRedis {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
	}

	// AI providers in fallback order.
	providers := []repository.AIRepository{repository.NewGroqAIRepository(cfg, appLogger)}
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		providers = append(providers, repository.NewGeminiAIRepository(cfg, appLogger, genAiClient))
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
	}

	newsSearchRepo := repository.NewGoogleNewsRepository(cfg, appLogger)
	contentRepo := repository.NewContentRepository(appLogger)
	articleRepo := repository.NewArticleRepository(db.DB)
	ratingRepo := repository.NewRatingRepository(db.DB, appLogger)
	knownStockRepo := repository.NewKnownStockRepository(db.DB)
	masterListRepo := repository.NewMasterListRepository(cfg, appLogger)
	ingestionRunRepo := repository.NewIngestionRunRepository(db.DB)

	extractorSvc := service.NewExtractorService(appLogger, providers...)
	validatorSvc := service.NewValidatorService(knownStockRepo, appLogger)
	ingestionSvc := service.NewIngestionService(cfg, appLogger, redisClient,
		newsSearchRepo, contentRepo, articleRepo, ratingRepo, ingestionRunRepo,
		extractorSvc, validatorSvc, notifier)
	masterListSvc := service.NewMasterListService(masterListRepo, knownStockRepo, appLogger)

	return &app{
		cfg:               cfg,
		logger:            appLogger,
		db:                db,
		redisClient:       redisClient,
		ratingRepo:        ratingRepo,
		ingestionRunRepo:  ingestionRunRepo,
		ingestionService:  ingestionSvc,
		masterListService: masterListSvc,
		close: func() {
			if redisClient != nil {
				_ = redisClient.Close()
			}
			if sqlDB, err := db.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}
			_ = appLogger.Sync()
		},
	}, nil
}

// applyMigrations brings the schema up to date before the service starts.
func applyMigrations(cfg postgres.Config) error {
	m, err := migrate.New("file://migrations", cfg.DSN())
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the tracker service with scheduled ingestion and the read API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(true)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.close()

	a.logger.Info("Starting Tracker Service", logger.StringField("name", a.cfg.App.Name))

	// Scheduled ingestion
	scheduler := cron.New()
	if a.cfg.Ingestion.Cron != "" {
		_, err := scheduler.AddFunc(a.cfg.Ingestion.Cron, func() {
			if _, err := a.ingestionService.Run(context.Background()); err != nil {
				if errors.Is(err, service.ErrRunInProgress) {
					a.logger.Warn("Scheduled run skipped, another run is in progress")
					return
				}
				a.logger.Error("Scheduled ingestion run failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			a.logger.Fatal("Invalid ingestion cron expression", logger.ErrorField(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// HTTP read API
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")
	ratingHandler := delivery.NewRatingHandler(a.ratingRepo, a.logger)
	ratingHandler.RegisterRoutes(apiV1.Group("/ratings"))
	runHandler := delivery.NewRunHandler(a.ingestionService, a.ingestionRunRepo, a.logger)
	runHandler.RegisterRoutes(apiV1.Group("/runs"))

	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.API.Port)
		a.logger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	a.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	a.logger.Info("Server exiting")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executes one ingestion run and exits",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(true)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer a.close()

		summary, err := a.ingestionService.Run(ctx)
		if err != nil {
			a.logger.Fatal("Ingestion run failed", logger.ErrorField(err))
		}
		a.logger.Info("Ingestion run completed",
			logger.IntField("run_id", int(summary.RunID)),
			logger.IntField("new_ratings", summary.NewRatings))
	},
}

var fetchStocksCmd = &cobra.Command{
	Use:   "fetch-stocks",
	Short: "Downloads the exchange equity list and replaces the local master list",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(false)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer a.close()

		count, err := a.masterListService.Refresh(ctx)
		if err != nil {
			a.logger.Fatal("Master list refresh failed", logger.ErrorField(err))
		}
		a.logger.Info("Master list refresh completed", logger.IntField("stocks", count))
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tracker-service",
		Short: "Tracks broker research calls from public news and serves them over HTTP",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, runCmd, fetchStocksCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing tracker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
