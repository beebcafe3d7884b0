package config

import (
	"fmt"
	"strings"
)

// Require fails when a setting the process cannot start without is empty.
// The Mongo settings are only required for the mongo backend.
func (c Config) Require() error {
	switch c.StoreBackend {
	case StoreMongo:
	case StoreMemory:
		return nil
	default:
		return fmt.Errorf("ENV STORE_BACKEND must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreBackend)
	}

	missing := make([]string, 0)
	if strings.TrimSpace(c.MongoURI) == "" {
		missing = append(missing, "MONGO_URI")
	}
	if strings.TrimSpace(c.DBName) == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("ENV %s is required", strings.Join(missing, ", "))
	}
	return nil
}
