package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// collectionRow is one persisted collection: a key and its JSON payload.
type collectionRow struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      []byte
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// DB is the gorm-backed Store. SQLite for development and tests,
// Postgres in production; the driver is picked from configuration.
type DB struct {
	db *gorm.DB
}

// Open connects with the given driver ("sqlite" or "postgres") and DSN
// and ensures the collections table exists. Postgres connections are
// retried a few times so the app survives the database coming up last.
func Open(driver, dsn string) (*DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	switch driver {
	case "postgres":
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection, running the schema migration.
func New(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate collections table: %w", err)
	}
	return &DB{db: db}, nil
}

func (s *DB) LoadCollection(key string, out any) error {
	var row collectionRow
	err := s.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load collection %s: %w", key, err)
	}
	if err := json.Unmarshal(row.Data, out); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

func (s *DB) SaveCollection(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	row := collectionRow{Key: key, Data: data, UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save collection %s: %w", key, err)
	}
	return nil
}

// Ping verifies connectivity for health checks.
func (s *DB) Ping() error {
	return s.db.Exec("SELECT 1").Error
}
