package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// GetSyncMeta retrieves a sync metadata value.
func (db *DB) GetSyncMeta(key string) (string, error) {
	var meta models.SyncMeta
	err := db.First(&meta, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetSyncMeta sets a sync metadata value.
func (db *DB) SetSyncMeta(key, value string) error {
	meta := models.SyncMeta{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}

// GetSyncTime parses a timestamp stored under key.
// The zero time is returned when the key is empty or unparseable.
func (db *DB) GetSyncTime(key string) (time.Time, error) {
	value, err := db.GetSyncMeta(key)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}
