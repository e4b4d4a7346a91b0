package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-tracker/backend/config"
)

// NewSQLiteConnection opens the embedded local store at cfg.SQLitePath.
// SQLite allows a single writer, so the pool is pinned to one connection.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	conn, err := sql.Open("sqlite", cfg.SQLitePath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("Database connection established",
		"driver", DriverSQLite,
		"path", cfg.SQLitePath,
	)

	return &Database{
		db:     db,
		driver: DriverSQLite,
		cfg:    cfg,
	}, nil
}
