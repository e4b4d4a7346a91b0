package mock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

var once sync.Once
var testDb *Db

// Db is a file-backed SQLite store migrated from the application models.
type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
	order    []any
	dir      string
}

// NewDb opens the shared test database, creating and migrating it on first use.
func NewDb() *Db {
	once.Do(
		func() {
			testDb = open()
		},
	)

	return testDb
}

func open() *Db {
	dir, err := os.MkdirTemp("", "budget-tracker-it-")
	if err != nil {
		panic(err)
	}

	database, err := db.Open(&config.DatabaseConfig{
		Driver:     db.DriverSQLite,
		SQLitePath: filepath.Join(dir, "budget_tracker.db"),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := database.Migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		Database: database,
		DbConn:   database.DB(),
		models:   map[string]any{},
		order:    model.AllModels(),
		dir:      dir,
	}

	for _, m := range newDbMock.order {
		stmt := &gorm.Statement{DB: newDbMock.DbConn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = m
	}

	return newDbMock
}

// ClearDB removes every row, soft-deleted ones included. Tables are emptied in
// reverse dependency order so foreign keys never block a delete.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.order[i]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", d.order[i], err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// Close closes the connection and removes the database file.
func (d *Db) Close() error {
	err := d.Database.Close()
	_ = os.RemoveAll(d.dir)
	return err
}
