package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caresoft/vave-engine/internal/repository"
	"github.com/caresoft/vave-engine/pkg/config"
	"github.com/caresoft/vave-engine/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := runMigrations(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.SeedCatalog {
		materialRepo := repository.NewMaterialRepository(db)
		if err := materialRepo.Seed(context.Background(), seedMaterials()); err != nil {
			log.Fatal("material catalog seeding failed", zap.Error(err))
		}
		log.Info("material catalog seeded", zap.Int("entries", len(seedMaterials())))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
