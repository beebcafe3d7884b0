package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"pottyspotty/internal/config"
	"pottyspotty/internal/database"
	"pottyspotty/internal/logger"
	"pottyspotty/internal/models"
	"pottyspotty/internal/seed"
	"pottyspotty/internal/store"
)

func main() {
	dataPath := flag.String("data", "data/rawRestroom.json", "path to the raw restroom export")
	state := flag.String("state", "TN", "state assigned to every seeded restroom")
	flag.Parse()

	config.Load()
	cfg := config.AppEnv

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "pottyspotty-seed")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	if err := cfg.Require(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}
	if !cfg.UsesMongo() {
		lg.Fatal("seeding requires the mongo store backend", zap.String("store_backend", cfg.StoreBackend))
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		lg.Fatal("open seed data", zap.Error(err))
	}
	defer f.Close()

	rows, err := seed.Decode(f)
	if err != nil {
		lg.Fatal("read seed data", zap.Error(err))
	}
	restrooms, skipped := seed.Transform(rows, *state)
	restrooms = seed.Dedupe(restrooms)
	if len(skipped) > 0 {
		lg.Warn("skipped unusable rows", zap.Ints("rows", skipped))
	}

	inserted, err := seedDatabase(cfg, restrooms, lg)
	if err != nil {
		lg.Fatal("error seeding database", zap.Int("inserted", inserted), zap.Error(err))
	}
	lg.Info("database seeded", zap.Int("restrooms", inserted))
}

// seedDatabase replaces the restrooms collection with the given records.
func seedDatabase(cfg config.Config, restrooms []models.Restroom, lg *zap.Logger) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			lg.Warn("MongoDB disconnect error", zap.Error(err))
		}
		lg.Info("MongoDB connection closed")
	}()

	db := client.Database(cfg.DBName)
	lg.Info("MongoDB connected for seeding", zap.String("db", db.Name()))

	if err := database.EnsureRestroomIndexes(db, lg); err != nil {
		lg.Warn("restroom index warning", zap.Error(err))
	}

	return store.NewMongoStore(db).ReplaceAll(ctx, restrooms)
}
