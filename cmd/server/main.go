package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/catalog"
	"github.com/Nitingarg01/Major-project-sub001/internal/company"
	"github.com/Nitingarg01/Major-project-sub001/internal/config"
	"github.com/Nitingarg01/Major-project-sub001/internal/handlers"
	"github.com/Nitingarg01/Major-project-sub001/internal/jobs"
	"github.com/Nitingarg01/Major-project-sub001/internal/metrics"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/questions"
	"github.com/Nitingarg01/Major-project-sub001/internal/repositories"
	"github.com/Nitingarg01/Major-project-sub001/internal/routers"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"
	"github.com/Nitingarg01/Major-project-sub001/internal/stats"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, cfg *config.Config, sessionHandler *handlers.SessionHandler, streamHandler *handlers.StreamHandler,
	userHandler *handlers.UserHandler, companyHandler *handlers.CompanyHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.SessionRoutes(router, sessionHandler, streamHandler, cfg.JWTSecret)
	routers.UserRoutes(router, userHandler, cfg.JWTSecret)
	routers.CompanyRoutes(router, companyHandler)
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.SessionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// initQuestionProvider returns the embedded bank, or mongo backed by the
// bank when QUESTION_SOURCE=mongo. The returned closer may be nil.
func initQuestionProvider(ctx context.Context, cfg *config.Config, bank *questions.BankProvider, logger *zap.Logger) (questions.Provider, *questions.MongoClient, error) {
	if cfg.QuestionSource != config.QuestionSourceMongo {
		return bank, nil, nil
	}

	client, err := questions.NewMongoClient(ctx, cfg.MongoURI, cfg.QuestionsDBName)
	if err != nil {
		return nil, nil, err
	}
	mongoProvider, err := questions.NewMongoProvider(ctx, client, cfg.QuestionsCollection, logger)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return questions.NewFallbackProvider(mongoProvider, bank, logger), client, nil
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("question_source", cfg.QuestionSource),
		zap.Bool("database_enabled", cfg.DatabaseEnabled),
		zap.Bool("redis_enabled", cfg.RedisAddr != ""))

	probes := map[string]handlers.Probe{}

	// question catalogue
	bank, err := questions.NewBankProvider()
	if err != nil {
		logger.Fatal("Failed to load question bank", zap.Error(err))
	}
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	provider, mongoClient, err := initQuestionProvider(startupCtx, cfg, bank, logger)
	cancelStartup()
	if err != nil {
		logger.Fatal("Failed to initialize question provider", zap.Error(err))
	}
	if mongoClient != nil {
		probes["mongo"] = mongoClient.Ping
	}

	builder, err := catalog.NewBuilder(provider)
	if err != nil {
		logger.Fatal("Failed to initialize round catalog", zap.Error(err))
	}

	// company intel
	profiles, err := company.NewProfileSource()
	if err != nil {
		logger.Fatal("Failed to load company profiles", zap.Error(err))
	}
	companies := company.NewCachedSource(profiles, cfg.CompanyCacheTTL)

	orch, err := orchestrator.NewDefault()
	if err != nil {
		logger.Fatal("Failed to initialize orchestrator", zap.Error(err))
	}

	managerOpts := []sessions.Option{sessions.WithLogger(logger)}

	// session persistence (optional)
	var sessionRepo *repositories.SessionRepository
	var exporterJob *jobs.ReportExporterJob
	if cfg.DatabaseEnabled {
		db, err := initDatabase(cfg)
		if err != nil {
			logger.Error("Failed to initialize database, sessions will not be persisted", zap.Error(err))
		} else {
			sessionRepo = repositories.NewSessionRepository(db)
			managerOpts = append(managerOpts, sessions.WithStore(sessionRepo))
			probes["database"] = func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}

			exporterJob = jobs.NewReportExporterJob(sessionRepo, &jobs.ExporterConfig{
				Schedule:      cfg.ReportExportSchedule,
				ExportDir:     cfg.ReportExportDir,
				ExportEnabled: cfg.ReportExportEnabled,
			}, logger)
			if err := exporterJob.Start(); err != nil {
				logger.Error("Failed to start report exporter job", zap.Error(err))
			}
			logger.Info("Session persistence initialized")
		}
	}

	// per-user stats (optional)
	var recorder *stats.Recorder
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		recorder = stats.NewRecorder(rdb, logger)
		managerOpts = append(managerOpts, sessions.WithFinishedRecorder(recorder))
		probes["redis"] = recorder.Ping
	}

	manager := sessions.NewManager(orch, builder, companies, managerOpts...)

	sweeper := jobs.NewSessionSweeperJob(manager, companies, cfg.SessionSweepSchedule, cfg.SessionIdleTTL, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start session sweeper", zap.Error(err))
	}

	// typed nils must not leak into the handler's interfaces
	var history handlers.HistoryLister
	if sessionRepo != nil {
		history = sessionRepo
	}
	var statsReader handlers.StatsReader
	if recorder != nil {
		statsReader = recorder
	}

	sessionHandler := handlers.NewSessionHandler(manager, logger)
	streamHandler := handlers.NewStreamHandler(manager, logger)
	userHandler := handlers.NewUserHandler(history, statsReader, logger)
	companyHandler := handlers.NewCompanyHandler(companies, logger)
	healthHandler := handlers.NewHealthHandler(cfg, probes)

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, metrics.Middleware("interview"))

	registerRoutes(router, cfg, sessionHandler, streamHandler, userHandler, companyHandler, healthHandler)

	serverAddr := ":" + cfg.Port

	// http server with timeouts; websocket streams manage their own deadlines
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	sweeper.Stop()
	if exporterJob != nil {
		exporterJob.Stop()
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Warn("failed to disconnect from mongo", zap.Error(err))
		}
	}

	logger.Info("Interview service exited")
}
