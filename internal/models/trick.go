package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// UncategorizedCategory is the fallback category that always exists.
const UncategorizedCategory = "Uncategorized"

// Trick is a named move the user practices.
type Trick struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewTrick creates a trick with a fresh id.
func NewTrick(name, category string, difficulty Difficulty) Trick {
	return Trick{
		ID:         uuid.New(),
		Name:       name,
		Category:   category,
		Difficulty: difficulty,
	}
}

// UnmarshalJSON defaults a missing difficulty to none.
func (t *Trick) UnmarshalJSON(data []byte) error {
	type alias Trick
	a := alias{Difficulty: DifficultyNone}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Trick(a)
	return nil
}
