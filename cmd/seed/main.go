package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"albumizer/internal/config"
	"albumizer/internal/db"
	addressrepo "albumizer/internal/repository/address"
	albumrepo "albumizer/internal/repository/album"
	userrepo "albumizer/internal/repository/user"
	"albumizer/internal/seed"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool)
	albums := albumrepo.NewPostgres(pool)
	addresses := addressrepo.NewPostgres(pool)

	if err := seed.Apply(ctx, users, albums, addresses); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied")
}
