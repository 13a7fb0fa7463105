// utils/db.go
package utils

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to Postgres when a DSN is given and falls back to a sqlite file in dataDir.
func OpenDB(databaseURL, dataDir string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn := strings.TrimSpace(databaseURL); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Println("🗄️  Using postgres for dashboard history")
		return db, nil
	}

	if err := EnsureDataDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to ensure data dir %s: %w", dataDir, err)
	}
	path := GetDataPath(dataDir, "dashboard.db")
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	log.Printf("🗄️  Using sqlite at %s for dashboard history", path)
	return db, nil
}
