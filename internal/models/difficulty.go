// Package models defines the core data structures for TrickPlanner.
package models

import (
	"encoding/json"
	"strings"
)

// Difficulty is the ordinal difficulty of a trick.
type Difficulty string

const (
	DifficultyNone   Difficulty = "none"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns every difficulty in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyNone,
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
	}
}

// IsValid checks if the difficulty is a known value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyNone, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rank orders difficulties: none < easy < medium < hard.
// Unknown values rank as none.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// AtMost reports whether d does not exceed ceiling.
func (d Difficulty) AtMost(ceiling Difficulty) bool {
	return d.Rank() <= ceiling.Rank()
}

// ParseDifficulty converts user input to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DifficultyNone, true
	}
	return d, d.IsValid()
}

// UnmarshalJSON decodes a difficulty, mapping unknown values to none.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = DifficultyNone
		return nil
	}
	parsed := Difficulty(s)
	if !parsed.IsValid() {
		parsed = DifficultyNone
	}
	*d = parsed
	return nil
}
