package database

import (
	"fmt"
	"path/filepath"

	"forumtrack/internal/config"
)

// NewDatabaseFromConfig opens the database selected by the config type.
// A sqlite database lives at <data_dir>/<siteID>.db.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, siteID string) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		dbPath := filepath.Join(cfg.DataDir, siteID+".db")
		return NewSQLiteDatabase(dbPath, nil, nil)
	case "memory":
		return NewSQLiteDatabase(":memory:", nil, nil)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
