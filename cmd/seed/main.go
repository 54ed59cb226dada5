// Command seed loads the standard train catalogue into Postgres. Trains
// whose name already exists are left untouched, so it is safe to rerun.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/railway_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/srgjo27/railway_reservation/internal/platform/config"
	"github.com/srgjo27/railway_reservation/internal/platform/database"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

func seed(ctx context.Context, trains ports.TrainRepository, log *logger.Logger) (int, error) {
	existing, err := trains.List(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.Name] = true
	}

	added := 0
	for _, s := range catalogue {
		if known[s.name] {
			log.Debug("train already present", "name", s.name)
			continue
		}

		train := &domain.Train{
			ID:            uuid.New(),
			Name:          s.name,
			Source:        s.source,
			Destination:   s.destination,
			DepartureTime: s.departure,
			TotalSeats:    s.seats,
			CreatedAt:     time.Now(),
		}
		if err := trains.Create(ctx, train); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func main() {
	cfg, _, _ := config.Load(".env")

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "railway-seed",
	})

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	}, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("failed to migrate", "error", err)
	}

	added, err := seed(ctx, postgres.NewTrainRepository(db), log)
	if err != nil {
		log.Fatal("failed to seed trains", "added", added, "error", err)
	}

	log.Info("seeding finished", "added", added, "catalogue", len(catalogue))
}
