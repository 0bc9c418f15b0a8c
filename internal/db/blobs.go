package db

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// Load returns the blob stored under key. The boolean is false when
// nothing has been saved yet.
func (db *DB) Load(key string) ([]byte, bool, error) {
	var blob models.Blob
	err := db.First(&blob, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load blob %s: %w", key, err)
	}
	return blob.Value, true, nil
}

// Save upserts the blob stored under key.
func (db *DB) Save(key string, data []byte) error {
	blob := models.Blob{Key: key, Value: data}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("save blob %s: %w", key, err)
	}
	return nil
}

// SaveAll upserts every blob in one transaction. Either all are written
// or none are.
func (db *DB) SaveAll(blobs map[string][]byte) error {
	return db.Transaction(func(tx *DB) error {
		for _, key := range slices.Sorted(maps.Keys(blobs)) {
			if err := tx.Save(key, blobs[key]); err != nil {
				return err
			}
		}
		return nil
	})
}

// BlobSizes returns the stored size in bytes of every collection.
func (db *DB) BlobSizes() (map[string]int, error) {
	var blobs []models.Blob
	if err := db.Find(&blobs).Error; err != nil {
		return nil, err
	}
	sizes := make(map[string]int, len(blobs))
	for _, b := range blobs {
		sizes[b.Key] = len(b.Value)
	}
	return sizes, nil
}
