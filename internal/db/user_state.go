package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

const defaultStateID = "default"

// GetUserState retrieves the current user state.
func (db *DB) GetUserState() (*models.UserState, error) {
	var state models.UserState
	err := db.Where("id = ?", defaultStateID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserState{ID: defaultStateID}, nil
		}
		return nil, err
	}
	return &state, nil
}

// LoadToken returns the stored auth token and email.
func (db *DB) LoadToken() (token, email string, err error) {
	state, err := db.GetUserState()
	if err != nil {
		return "", "", err
	}
	return state.AuthToken, state.Email, nil
}

// SaveToken stores the auth token for the signed-in account.
func (db *DB) SaveToken(token, email string) error {
	state := models.UserState{
		ID:        defaultStateID,
		Email:     email,
		AuthToken: token,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "auth_token", "updated_at"}),
	}).Create(&state).Error
}

// ClearToken forgets the signed-in account.
func (db *DB) ClearToken() error {
	return db.Model(&models.UserState{}).Where("id = ?", defaultStateID).
		Updates(map[string]interface{}{"email": "", "auth_token": ""}).Error
}

// GetOrCreateTrackingID returns the persistent tracking ID, creating one if it doesn't exist.
// On any error, it falls back to generating a per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	state, err := db.GetUserState()
	if err != nil {
		return uuid.New().String()
	}

	if state.TrackingID != "" {
		return state.TrackingID
	}

	trackingID := uuid.New().String()
	state.TrackingID = trackingID
	_ = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracking_id", "updated_at"}),
	}).Create(state).Error

	return trackingID
}
