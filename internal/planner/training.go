package planner

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// DifficultyCount is the number of training items at one difficulty.
type DifficultyCount struct {
	Difficulty models.Difficulty
	Count      int
}

// CategoryCount is the number of training items in one category.
type CategoryCount struct {
	Category string
	Count    int
}

// TrainingPlans returns every daily plan, newest first.
func (s *Store) TrainingPlans() []models.DailyTrainingPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.DailyTrainingPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, clonePlan(p))
	}
	return out
}

// TrainingPlan returns the plan for the day of date.
func (s *Store) TrainingPlan(date time.Time) (models.DailyTrainingPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.planIndexLocked(date); i >= 0 {
		return clonePlan(s.plans[i]), true
	}
	return models.DailyTrainingPlan{}, false
}

// TrainingItems returns the items planned for the day of date.
func (s *Store) TrainingItems(date time.Time) []models.TrainingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trainingItemsLocked(date)
}

// AddTrainingItem plans target repetitions of a trick on the day of date.
// If the trick is already planned that day its target grows instead.
// Targets below 1 are raised to 1.
func (s *Store) AddTrainingItem(trickID uuid.UUID, target int, date time.Time) (models.TrainingItem, error) {
	target = max(target, 1)

	var result models.TrainingItem
	err := s.mutate(func() ([]string, error) {
		ti := s.trickIndexLocked(trickID)
		if ti < 0 {
			return nil, ErrTrickNotFound
		}
		trick := s.tricks[ti]

		pi := s.planIndexLocked(date)
		if pi < 0 {
			s.plans = append(s.plans, s.newPlan(date))
			pi = len(s.plans) - 1
		}
		plan := &s.plans[pi]

		if ii := slices.IndexFunc(plan.Items, func(item models.TrainingItem) bool {
			return item.TrickID == trickID
		}); ii >= 0 {
			plan.Items[ii].TargetCount += target
			result = plan.Items[ii]
		} else {
			result = models.TrainingItem{
				ID:          uuid.New(),
				TrickID:     trick.ID,
				TrickName:   trick.Name,
				Category:    trick.Category,
				Difficulty:  trick.Difficulty,
				TargetCount: target,
			}
			plan.Items = append(plan.Items, result)
		}
		sortPlans(s.plans)
		return []string{models.BlobTrainingPlans}, nil
	})
	return result, err
}

// UpdateTrainingItem sets the completed count, clamped to [0, target].
func (s *Store) UpdateTrainingItem(itemID uuid.UUID, completed int, date time.Time) (models.TrainingItem, error) {
	return s.setCompleted(itemID, date, func(models.TrainingItem) int {
		return completed
	})
}

// IncrementTrainingItem adds delta to the completed count, clamped to
// [0, target].
func (s *Store) IncrementTrainingItem(itemID uuid.UUID, date time.Time, delta int) (models.TrainingItem, error) {
	return s.setCompleted(itemID, date, func(item models.TrainingItem) int {
		return item.CompletedCount + delta
	})
}

func (s *Store) setCompleted(itemID uuid.UUID, date time.Time, next func(models.TrainingItem) int) (models.TrainingItem, error) {
	var result models.TrainingItem
	err := s.mutate(func() ([]string, error) {
		pi, ii, err := s.itemIndexLocked(itemID, date)
		if err != nil {
			return nil, err
		}
		item := &s.plans[pi].Items[ii]
		value := clamp(next(*item), 0, item.TargetCount)
		if value == item.CompletedCount {
			result = *item
			return nil, nil
		}
		item.CompletedCount = value
		result = *item
		return []string{models.BlobTrainingPlans}, nil
	})
	return result, err
}

// DeleteTrainingItem removes an item. A plan left without items is removed.
func (s *Store) DeleteTrainingItem(itemID uuid.UUID, date time.Time) error {
	return s.mutate(func() ([]string, error) {
		pi, ii, err := s.itemIndexLocked(itemID, date)
		if err != nil {
			return nil, err
		}
		s.plans[pi].Items = slices.Delete(s.plans[pi].Items, ii, ii+1)
		if len(s.plans[pi].Items) == 0 {
			s.plans = slices.Delete(s.plans, pi, pi+1)
		}
		return []string{models.BlobTrainingPlans}, nil
	})
}

// ClearTraining removes the plan for the day of date, if any.
func (s *Store) ClearTraining(date time.Time) error {
	return s.mutate(func() ([]string, error) {
		pi := s.planIndexLocked(date)
		if pi < 0 {
			return nil, nil
		}
		s.plans = slices.Delete(s.plans, pi, pi+1)
		return []string{models.BlobTrainingPlans}, nil
	})
}

// TrainingCompletion sums completed and target counts for the day.
func (s *Store) TrainingCompletion(date time.Time) (completed, target int) {
	for _, item := range s.TrainingItems(date) {
		completed += item.CompletedCount
		target += item.TargetCount
	}
	return completed, target
}

// TrainingSummaryByDifficulty counts the day's items per difficulty,
// omitting difficulties with no items.
func (s *Store) TrainingSummaryByDifficulty(date time.Time) []DifficultyCount {
	items := s.TrainingItems(date)

	var out []DifficultyCount
	for _, d := range models.AllDifficulties() {
		n := 0
		for _, item := range items {
			if item.Difficulty == d {
				n++
			}
		}
		if n > 0 {
			out = append(out, DifficultyCount{Difficulty: d, Count: n})
		}
	}
	return out
}

// TrainingSummaryByCategory counts the day's items per category, sorted
// by category.
func (s *Store) TrainingSummaryByCategory(date time.Time) []CategoryCount {
	counts := make(map[string]int)
	for _, item := range s.TrainingItems(date) {
		counts[item.Category]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Count: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int {
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

func (s *Store) newPlan(date time.Time) models.DailyTrainingPlan {
	return models.DailyTrainingPlan{
		Date:               startOfDay(date, s.loc),
		Items:              []models.TrainingItem{},
		AppliedTemplateIDs: []uuid.UUID{},
	}
}

func (s *Store) trainingItemsLocked(date time.Time) []models.TrainingItem {
	pi := s.planIndexLocked(date)
	if pi < 0 {
		return []models.TrainingItem{}
	}
	return clonePlan(s.plans[pi]).Items
}

func (s *Store) planIndexLocked(date time.Time) int {
	return slices.IndexFunc(s.plans, func(p models.DailyTrainingPlan) bool {
		return sameDay(p.Date, date, s.loc)
	})
}

func (s *Store) itemIndexLocked(itemID uuid.UUID, date time.Time) (int, int, error) {
	pi := s.planIndexLocked(date)
	if pi < 0 {
		return -1, -1, ErrPlanNotFound
	}
	ii := slices.IndexFunc(s.plans[pi].Items, func(item models.TrainingItem) bool {
		return item.ID == itemID
	})
	if ii < 0 {
		return -1, -1, ErrTrainingItemNotFound
	}
	return pi, ii, nil
}

// mergePlans moves every plan to the start of its day and folds plans
// that share a day into one. Item counts are clamped so that
// 1 <= target and 0 <= completed <= target.
func mergePlans(plans []models.DailyTrainingPlan, loc *time.Location) []models.DailyTrainingPlan {
	out := make([]models.DailyTrainingPlan, 0, len(plans))
	for _, p := range plans {
		day := startOfDay(p.Date, loc)
		i := slices.IndexFunc(out, func(q models.DailyTrainingPlan) bool {
			return q.Date.Equal(day)
		})
		if i < 0 {
			out = append(out, models.DailyTrainingPlan{
				Date:               day,
				Items:              []models.TrainingItem{},
				AppliedTemplateIDs: []uuid.UUID{},
			})
			i = len(out) - 1
		}

		merged := &out[i]
		for _, item := range p.Items {
			item.TargetCount = max(item.TargetCount, 1)
			item.CompletedCount = clamp(item.CompletedCount, 0, item.TargetCount)
			merged.Items = append(merged.Items, item)
		}
		for _, id := range p.AppliedTemplateIDs {
			if !slices.Contains(merged.AppliedTemplateIDs, id) {
				merged.AppliedTemplateIDs = append(merged.AppliedTemplateIDs, id)
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
