package planner

import (
	"maps"
	"slices"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// ComboRequest describes a random combo.
type ComboRequest struct {
	// Selections maps a category to how many of its tricks to draw.
	// Categories not in the map are skipped.
	Selections map[string]int
	// MaxDifficulty excludes tricks ranked above it.
	MaxDifficulty models.Difficulty
	// RandomAll draws one trick from every category with an eligible
	// trick and ignores Selections.
	RandomAll bool
}

// RandomCombo draws tricks without replacement. A category with fewer
// eligible tricks than requested contributes all of them. The result is
// grouped by category in category order.
func (s *Store) RandomCombo(req ComboRequest) []models.Trick {
	s.mu.Lock()
	defer s.mu.Unlock()

	eligible := make(map[string][]models.Trick)
	for _, t := range s.tricks {
		if t.Difficulty.AtMost(req.MaxDifficulty) {
			eligible[t.Category] = append(eligible[t.Category], t)
		}
	}

	var order []string
	counts := make(map[string]int)
	if req.RandomAll {
		for _, c := range s.categories {
			if len(eligible[c]) > 0 {
				order = append(order, c)
				counts[c] = 1
			}
		}
	} else {
		order = slices.Sorted(maps.Keys(req.Selections))
		counts = req.Selections
	}

	combo := []models.Trick{}
	for _, category := range order {
		n := counts[category]
		pool := slices.Clone(eligible[category])
		if n <= 0 || len(pool) == 0 {
			continue
		}
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		combo = append(combo, pool[:min(n, len(pool))]...)
	}
	return combo
}
