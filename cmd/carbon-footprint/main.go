package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"carbon-footprint/internal/api"
	"carbon-footprint/internal/api/handlers"
	"carbon-footprint/internal/baseline"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/seed"
	"carbon-footprint/internal/service"
	"carbon-footprint/pkg/config"
	"carbon-footprint/pkg/logger"
	"carbon-footprint/pkg/postgres"

	"go.uber.org/zap"
)

// @title Carbon Footprint API
// @version 1.0
// @description Household carbon footprint calculator with technology and lifestyle recommendations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5001
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting carbon footprint service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	sessionRepo := repository.NewSessionRepository(db, appLogger)
	responseRepo := repository.NewResponseRepository(db, appLogger)
	calcRepo := repository.NewCalculationRepository(db, appLogger)
	recRepo := repository.NewRecommendationRepository(db, appLogger)
	programRepo := repository.NewProgramRepository(db, appLogger)
	refRepo := repository.NewReferenceRepository(db, appLogger)

	// Reference tables are read once and shared read-only
	ref, err := loadReference(ctx, refRepo, cfg.Reference.DataFile, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load reference data", zap.Error(err))
	}

	table := baseline.Default()
	if cfg.Reference.BaselineFile != "" {
		table, err = baseline.Load(cfg.Reference.BaselineFile)
		if err != nil {
			appLogger.Fatal("Failed to load baseline table", zap.String("file", cfg.Reference.BaselineFile), zap.Error(err))
		}
		appLogger.Info("Baseline table loaded", zap.String("file", cfg.Reference.BaselineFile))
	}

	calc := emissions.NewCalculator(ref)

	// Initialize services
	sessionService := service.NewSessionService(sessionRepo, responseRepo, appLogger)
	calcService := service.NewCalculationService(calc, calcRepo, sessionService, cfg.Reference.DefaultState, appLogger)

	analyzerCfg := service.DefaultAnalyzerConfig().WithDefaultState(cfg.Reference.DefaultState)
	lifestyleCfg := service.DefaultLifestyleConfig().WithDefaultState(cfg.Reference.DefaultState)

	analyzer := service.NewDiagnosticAnalyzer(calc, ref, table, analyzerCfg, appLogger)
	matcher := service.NewProgramMatcher(programRepo, service.DefaultMatcherConfig(), appLogger)
	lifestyle := service.NewLifestyleAnalyzer(calcRepo, ref, table, lifestyleCfg, appLogger)
	recService := service.NewRecommendationService(analyzer, matcher, lifestyle, recRepo, sessionService, cfg.Reference.DefaultState, appLogger)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, appLogger)
	calcHandler := handlers.NewCalculationHandler(calcService, appLogger)
	recHandler := handlers.NewRecommendationHandler(recService, appLogger)

	// Setup router
	app := api.SetupRouter(&cfg.Server, sessionHandler, calcHandler, recHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// loadReference reads the reference tables from the database, falling back
// to the bundled data file when the database has not been seeded.
func loadReference(ctx context.Context, repo *repository.ReferenceRepository, dataFile string, log *zap.Logger) (*emissions.Reference, error) {
	ref, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := ref.Factor(emissions.FactorElectricity, emissions.RegionUS); ok {
		return ref, nil
	}

	log.Warn("Reference tables are empty, using data file", zap.String("file", dataFile))
	data, err := seed.Load(dataFile)
	if err != nil {
		return nil, err
	}
	return data.Reference(), nil
}
