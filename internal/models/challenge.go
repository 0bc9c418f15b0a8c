package models

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeStatus is the outcome of a challenge.
type ChallengeStatus string

const (
	ChallengeNotDone ChallengeStatus = "notDone"
	ChallengeSuccess ChallengeStatus = "success"
	ChallengeFail    ChallengeStatus = "fail"
)

// IsValid checks if the status is a known value.
func (s ChallengeStatus) IsValid() bool {
	switch s {
	case ChallengeNotDone, ChallengeSuccess, ChallengeFail:
		return true
	}
	return false
}

// DisplayName returns the human-readable label.
func (s ChallengeStatus) DisplayName() string {
	switch s {
	case ChallengeSuccess:
		return "Success"
	case ChallengeFail:
		return "Fail"
	default:
		return "Not Done"
	}
}

// Challenge is a dated combo attempt. Combo entries are copies of the
// tricks at creation time.
type Challenge struct {
	ID     uuid.UUID       `json:"id"`
	Date   time.Time       `json:"date"`
	Combo  []Trick         `json:"combo"`
	Status ChallengeStatus `json:"status"`
}
