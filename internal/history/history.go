// Package history archives completed rental sessions for the analytics
// views. The archive is the only database-backed structure in the app and
// uses an in-memory sqlite, so it resets with the process like every other
// store.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"comrent-backend/internal/model"
)

// Store reads and writes archived session records.
type Store struct {
	db *gorm.DB
}

// Open connects to the archive database and runs migrations. An empty DSN
// selects a private in-memory database.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&model.SessionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Archive appends one completed session record.
func (s *Store) Archive(ctx context.Context, rec model.SessionRecord) error {
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to archive session for %s: %w", rec.UnitName, err)
	}
	return nil
}

// List returns the records that started at or after since, oldest first.
func (s *Store) List(ctx context.Context, since time.Time) ([]model.SessionRecord, error) {
	var recs []model.SessionRecord
	err := s.db.WithContext(ctx).
		Where("started_at >= ?", since).
		Order("started_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// DailyStat is one day's aggregate over the archive.
type DailyStat struct {
	Day      string  `json:"day"`
	Sessions int64   `json:"sessions"`
	Revenue  float64 `json:"revenue"`
}

// Daily aggregates session counts and revenue per calendar day since the
// given time.
func (s *Store) Daily(ctx context.Context, since time.Time) ([]DailyStat, error) {
	var stats []DailyStat
	err := s.db.WithContext(ctx).
		Model(&model.SessionRecord{}).
		Select("date(started_at) AS day, COUNT(*) AS sessions, COALESCE(SUM(price), 0) AS revenue").
		Where("started_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
