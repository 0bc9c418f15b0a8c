package planner

import (
	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// DefaultCategories seed an empty category collection.
var DefaultCategories = []string{
	"Flips",
	"Grinds",
	"Slides",
	"Transitions",
	"Manuals",
	"Old School",
}

// SampleTricks returns the starter tricks used when no tricks are stored.
// Each call returns fresh ids.
func SampleTricks() []models.Trick {
	samples := []struct {
		name, category string
	}{
		{"Ollie", "Old School"},
		{"Kickflip", "Flips"},
		{"Heelflip", "Flips"},
		{"50-50 Grind", "Grinds"},
		{"Boardslide", "Slides"},
		{"Manual", "Manuals"},
	}

	tricks := make([]models.Trick, 0, len(samples))
	for _, s := range samples {
		tricks = append(tricks, models.Trick{
			ID:         uuid.New(),
			Name:       s.name,
			Category:   s.category,
			Difficulty: models.DifficultyNone,
		})
	}
	return tricks
}
