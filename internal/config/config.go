package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port         string
	StoreBackend string
	MongoURI     string
	DBName       string

	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	GeocodeCacheTTL time.Duration

	LogLevel  string
	LogFormat string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnvOrDefault("PORT", "3001"),
		StoreBackend: strings.ToLower(getEnvOrDefault("STORE_BACKEND", StoreMongo)),
		MongoURI:     getEnvOrDefault("MONGO_URI", ""),
		DBName:       getEnvOrDefault("DB_NAME", "pottyspotty"),

		GeocoderURL:       getEnvOrDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnvOrDefault("GEOCODER_USER_AGENT", "PottySpotty/1.0"),
		GeocoderTimeout:   getDurationEnv("GEOCODER_TIMEOUT", 10, time.Second),

		RedisAddr:       getEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:         getIntEnv("REDIS_DB", 0),
		GeocodeCacheTTL: getDurationEnv("GEOCODE_CACHE_TTL", 720, time.Hour),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) UsesMongo() bool {
	return c.StoreBackend == StoreMongo
}

func (c Config) GeocodeCacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}
