package main

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"pottyspotty/internal/config"
	"pottyspotty/internal/database"
	"pottyspotty/internal/geocoding"
	"pottyspotty/internal/handlers"
	"pottyspotty/internal/logger"
	"pottyspotty/internal/store"
	"pottyspotty/internal/submission"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat, "pottyspotty")
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	if err := cfg.Require(); err != nil {
		lg.Fatal("invalid configuration", zap.Error(err))
	}

	restrooms, err := openStore(cfg, lg)
	if err != nil {
		lg.Fatal("MongoDB connection error", zap.Error(err))
	}

	var geocoder geocoding.Geocoder = geocoding.NewNominatim(
		cfg.GeocoderURL,
		cfg.GeocoderUserAgent,
		cfg.GeocoderTimeout,
		lg.Named("geocoder"),
	)
	if cfg.GeocodeCacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			lg.Warn("redis unreachable, geocode cache will fall through", zap.Error(err))
		}
		geocoder = geocoding.NewCached(geocoder, rdb, cfg.GeocodeCacheTTL, lg.Named("geocode_cache"))
		lg.Info("geocode cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	svc := submission.NewService(restrooms, geocoder, lg.Named("submission"))

	r := handlers.NewRouter(restrooms, svc, lg)

	lg.Info("Server is running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		lg.Fatal("failed to start server", zap.Error(err))
	}
}

// openStore connects to MongoDB and ensures its indexes, or returns an empty
// in-process store when STORE_BACKEND=memory.
func openStore(cfg config.Config, lg *zap.Logger) (store.RestroomStore, error) {
	if !cfg.UsesMongo() {
		lg.Warn("using in-memory restroom store, data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	client, err := database.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.DBName)
	lg.Info("MongoDB connected", zap.String("db", db.Name()))

	if err := database.EnsureRestroomIndexes(db, lg); err != nil {
		lg.Warn("restroom index warning", zap.Error(err))
	}
	return store.NewMongoStore(db), nil
}
