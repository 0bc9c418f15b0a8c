package planner

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// AddTrick creates a trick. An empty category falls back to
// Uncategorized; an unknown one is added to the category list.
func (s *Store) AddTrick(name, category string, difficulty models.Difficulty) (models.Trick, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Trick{}, ErrEmptyName
	}
	if !difficulty.IsValid() {
		return models.Trick{}, ErrInvalidDifficulty
	}

	trick := models.NewTrick(name, cleanCategory(category), difficulty)
	err := s.mutate(func() ([]string, error) {
		s.tricks = append(s.tricks, trick)
		s.sort.tricks(s.tricks)
		return []string{models.BlobTricks}, nil
	})
	return trick, err
}

// UpdateTrick replaces the mutable fields of a trick. Challenges and
// training items keep the copies they captured.
func (s *Store) UpdateTrick(id uuid.UUID, name, category string, difficulty models.Difficulty) (models.Trick, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Trick{}, ErrEmptyName
	}
	if !difficulty.IsValid() {
		return models.Trick{}, ErrInvalidDifficulty
	}

	var updated models.Trick
	err := s.mutate(func() ([]string, error) {
		i := s.trickIndexLocked(id)
		if i < 0 {
			return nil, ErrTrickNotFound
		}
		s.tricks[i].Name = name
		s.tricks[i].Category = cleanCategory(category)
		s.tricks[i].Difficulty = difficulty
		updated = s.tricks[i]
		s.sort.tricks(s.tricks)
		return []string{models.BlobTricks}, nil
	})
	return updated, err
}

// DeleteTrick removes a trick by id.
func (s *Store) DeleteTrick(id uuid.UUID) error {
	return s.mutate(func() ([]string, error) {
		i := s.trickIndexLocked(id)
		if i < 0 {
			return nil, ErrTrickNotFound
		}
		s.tricks = slices.Delete(s.tricks, i, i+1)
		return []string{models.BlobTricks}, nil
	})
}

// DeleteTricks removes every listed trick that exists and reports how
// many were removed.
func (s *Store) DeleteTricks(ids ...uuid.UUID) int {
	removed := 0
	_ = s.mutate(func() ([]string, error) {
		before := len(s.tricks)
		s.tricks = slices.DeleteFunc(s.tricks, func(t models.Trick) bool {
			return slices.Contains(ids, t.ID)
		})
		removed = before - len(s.tricks)
		if removed == 0 {
			return nil, nil
		}
		return []string{models.BlobTricks}, nil
	})
	return removed
}

// Tricks returns every trick sorted by category, then name.
func (s *Store) Tricks() []models.Trick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tricks)
}

// Trick looks up a trick by id.
func (s *Store) Trick(id uuid.UUID) (models.Trick, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.trickIndexLocked(id); i >= 0 {
		return s.tricks[i], true
	}
	return models.Trick{}, false
}

// TricksInCategory returns the tricks filed under category.
func (s *Store) TricksInCategory(category string) []models.Trick {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Trick
	for _, t := range s.tricks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) trickIndexLocked(id uuid.UUID) int {
	return slices.IndexFunc(s.tricks, func(t models.Trick) bool {
		return t.ID == id
	})
}

func cleanCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.UncategorizedCategory
	}
	return category
}
