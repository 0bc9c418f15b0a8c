package planner

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// sorter orders names case-insensitively. A collator is not safe for
// concurrent use; callers hold the store mutex.
type sorter struct {
	coll *collate.Collator
}

func newSorter() *sorter {
	return &sorter{coll: collate.New(language.Und, collate.IgnoreCase)}
}

func (s *sorter) compare(a, b string) int {
	return s.coll.CompareString(a, b)
}

// tricks orders by category, then name.
func (s *sorter) tricks(tricks []models.Trick) {
	slices.SortStableFunc(tricks, func(a, b models.Trick) int {
		if c := s.compare(a.Category, b.Category); c != 0 {
			return c
		}
		return s.compare(a.Name, b.Name)
	})
}

func (s *sorter) templates(templates []models.TrainingTemplate) {
	slices.SortStableFunc(templates, func(a, b models.TrainingTemplate) int {
		return s.compare(a.Name, b.Name)
	})
}

func sortChallenges(challenges []models.Challenge) {
	slices.SortStableFunc(challenges, func(a, b models.Challenge) int {
		return b.Date.Compare(a.Date)
	})
}

func sortPlans(plans []models.DailyTrainingPlan) {
	slices.SortStableFunc(plans, func(a, b models.DailyTrainingPlan) int {
		return b.Date.Compare(a.Date)
	})
}

// mergeCategories returns the sorted union of existing and every category
// referenced by tricks.
func mergeCategories(existing []string, tricks []models.Trick) []string {
	seen := make(map[string]struct{}, len(existing)+len(tricks))
	merged := make([]string, 0, len(existing)+len(tricks))
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	for _, c := range existing {
		add(c)
	}
	for _, t := range tricks {
		add(t.Category)
	}
	slices.Sort(merged)
	return merged
}

func ensureUncategorized(categories []string) []string {
	if slices.Contains(categories, models.UncategorizedCategory) {
		return categories
	}
	return append(categories, models.UncategorizedCategory)
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
