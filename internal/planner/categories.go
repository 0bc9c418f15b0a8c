package planner

import (
	"slices"
	"strings"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// Categories returns the sorted category list.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// AddCategory adds a category. Adding one that already exists returns
// ErrCategoryExists and changes nothing.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	return s.mutate(func() ([]string, error) {
		if slices.Contains(s.categories, name) {
			return nil, ErrCategoryExists
		}
		s.categories = append(s.categories, name)
		slices.Sort(s.categories)
		return []string{models.BlobCategories}, nil
	})
}

// RenameCategory renames a category and moves every trick in it. Renaming
// onto an existing category merges the two.
func (s *Store) RenameCategory(oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return ErrEmptyName
	}
	if oldName == newName {
		return nil
	}

	return s.mutate(func() ([]string, error) {
		i := slices.Index(s.categories, oldName)
		if i < 0 {
			return nil, ErrCategoryNotFound
		}
		if slices.Contains(s.categories, newName) {
			s.categories = slices.Delete(s.categories, i, i+1)
		} else {
			s.categories[i] = newName
		}
		s.categories = ensureUncategorized(s.categories)
		slices.Sort(s.categories)

		touched := []string{models.BlobCategories}
		if s.moveTricksLocked(oldName, newName) > 0 {
			s.sort.tricks(s.tricks)
			touched = append(touched, models.BlobTricks)
		}
		return touched, nil
	})
}

// DeleteCategory removes a category and reassigns its tricks to
// Uncategorized, which always survives.
func (s *Store) DeleteCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if name == models.UncategorizedCategory {
		return nil
	}

	return s.mutate(func() ([]string, error) {
		i := slices.Index(s.categories, name)
		if i < 0 {
			return nil, ErrCategoryNotFound
		}
		s.categories = slices.Delete(s.categories, i, i+1)
		s.categories = ensureUncategorized(s.categories)
		slices.Sort(s.categories)

		touched := []string{models.BlobCategories}
		if s.moveTricksLocked(name, models.UncategorizedCategory) > 0 {
			s.sort.tricks(s.tricks)
			touched = append(touched, models.BlobTricks)
		}
		return touched, nil
	})
}

func (s *Store) moveTricksLocked(from, to string) int {
	moved := 0
	for i := range s.tricks {
		if s.tricks[i].Category == from {
			s.tricks[i].Category = to
			moved++
		}
	}
	return moved
}
