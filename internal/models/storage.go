package models

import "time"

// Blob stores one persisted collection as an opaque JSON document.
type Blob struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     []byte    `gorm:"type:blob" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Blob) TableName() string {
	return "blobs"
}

// Collection keys used for local persistence.
const (
	BlobTricks            = "tricks"
	BlobCategories        = "categories"
	BlobChallenges        = "challenges"
	BlobTrainingPlans     = "training_plans"
	BlobTrainingTemplates = "training_templates"
)

// AllBlobKeys returns every collection key.
func AllBlobKeys() []string {
	return []string{
		BlobTricks,
		BlobCategories,
		BlobChallenges,
		BlobTrainingPlans,
		BlobTrainingTemplates,
	}
}

// SyncMeta stores sync metadata as key-value pairs.
type SyncMeta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncMeta) TableName() string {
	return "sync_meta"
}

// Common sync meta keys.
const (
	SyncMetaLastPush      = "last_push"
	SyncMetaLastPull      = "last_pull"
	SyncMetaSchemaVersion = "schema_version"
)
