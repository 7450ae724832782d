package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/persistence"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/seed"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.Handle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	seeder := seed.NewSeeder(
		repository.NewRoleRepository(pg.Handle()),
		repository.NewUserRepository(pg.Handle()),
		auth.NewHasher(cfg.Auth.BcryptCost),
		logger,
	)
	summary, err := seeder.Run(ctx)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete",
		zap.Int("roles", summary.Roles),
		zap.Int("users_created", summary.UsersCreated),
		zap.Int("users_skipped", summary.UsersSkipped))
}
