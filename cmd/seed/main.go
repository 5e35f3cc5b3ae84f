package main

import (
	"context"
	"flag"
	"log"

	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/seed"
	"carbon-footprint/pkg/config"
	"carbon-footprint/pkg/logger"
	"carbon-footprint/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataFile := flag.String("data", cfg.Reference.DataFile, "path to the reference data YAML")
	flag.Parse()

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	data, err := seed.Load(*dataFile)
	if err != nil {
		appLogger.Fatal("Failed to load reference data", zap.String("file", *dataFile), zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	refRepo := repository.NewReferenceRepository(db, appLogger)
	programRepo := repository.NewProgramRepository(db, appLogger)

	appLogger.Info("Starting database seeding...", zap.String("file", *dataFile))

	if err := refRepo.UpsertFactors(ctx, data.Factors); err != nil {
		appLogger.Fatal("Failed to seed emission factors", zap.Error(err))
	}
	if err := refRepo.UpsertRates(ctx, data.Rates); err != nil {
		appLogger.Fatal("Failed to seed electricity rates", zap.Error(err))
	}
	if err := refRepo.UpsertVehicles(ctx, data.Vehicles); err != nil {
		appLogger.Fatal("Failed to seed vehicles", zap.Error(err))
	}

	seeded := 0
	for _, p := range data.ProgramModels() {
		if err := programRepo.Upsert(ctx, p); err != nil {
			appLogger.Error("Failed to seed program", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		seeded++
	}

	appLogger.Info("Database seeding completed",
		zap.Int("factors", len(data.Factors)),
		zap.Int("rates", len(data.Rates)),
		zap.Int("vehicles", len(data.Vehicles)),
		zap.Int("programs", seeded),
	)
}
