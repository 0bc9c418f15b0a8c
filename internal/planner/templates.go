package planner

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// ManualTemplateName labels training items that came from no template.
const ManualTemplateName = "Manual"

// Templates returns every template sorted by name, ignoring case.
func (s *Store) Templates() []models.TrainingTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TrainingTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, cloneTemplate(t))
	}
	return out
}

// Template looks up a template by id.
func (s *Store) Template(id uuid.UUID) (models.TrainingTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.templateIndexLocked(id); i >= 0 {
		return cloneTemplate(s.templates[i]), true
	}
	return models.TrainingTemplate{}, false
}

// AddTemplate creates an empty template.
func (s *Store) AddTemplate(name string) (models.TrainingTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.TrainingTemplate{}, ErrEmptyName
	}

	template := models.TrainingTemplate{
		ID:    uuid.New(),
		Name:  name,
		Items: []models.TrainingTemplateItem{},
	}
	err := s.mutate(func() ([]string, error) {
		s.templates = append(s.templates, template)
		s.sort.templates(s.templates)
		return []string{models.BlobTrainingTemplates}, nil
	})
	return template, err
}

// UpdateTemplate replaces a stored template with t. Items without an id
// get one and item targets are raised to at least 1.
func (s *Store) UpdateTemplate(t models.TrainingTemplate) (models.TrainingTemplate, error) {
	t = cloneTemplate(t)
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return models.TrainingTemplate{}, ErrEmptyName
	}
	if t.Items == nil {
		t.Items = []models.TrainingTemplateItem{}
	}
	for i := range t.Items {
		if t.Items[i].ID == uuid.Nil {
			t.Items[i].ID = uuid.New()
		}
		t.Items[i].TargetCount = max(t.Items[i].TargetCount, 1)
	}

	err := s.mutate(func() ([]string, error) {
		i := s.templateIndexLocked(t.ID)
		if i < 0 {
			return nil, ErrTemplateNotFound
		}
		s.templates[i] = t
		s.sort.templates(s.templates)
		return []string{models.BlobTrainingTemplates}, nil
	})
	return cloneTemplate(t), err
}

// AddTemplateItem appends a trick to a template, capturing its name,
// category and difficulty.
func (s *Store) AddTemplateItem(templateID, trickID uuid.UUID, target int) (models.TrainingTemplateItem, error) {
	var item models.TrainingTemplateItem
	err := s.mutate(func() ([]string, error) {
		i := s.templateIndexLocked(templateID)
		if i < 0 {
			return nil, ErrTemplateNotFound
		}
		ti := s.trickIndexLocked(trickID)
		if ti < 0 {
			return nil, ErrTrickNotFound
		}
		trick := s.tricks[ti]
		item = models.TrainingTemplateItem{
			ID:          uuid.New(),
			TrickID:     trick.ID,
			TrickName:   trick.Name,
			Category:    trick.Category,
			Difficulty:  trick.Difficulty,
			TargetCount: max(target, 1),
		}
		s.templates[i].Items = append(s.templates[i].Items, item)
		return []string{models.BlobTrainingTemplates}, nil
	})
	return item, err
}

// RemoveTemplateItem drops one item from a template.
func (s *Store) RemoveTemplateItem(templateID, itemID uuid.UUID) error {
	return s.mutate(func() ([]string, error) {
		i := s.templateIndexLocked(templateID)
		if i < 0 {
			return nil, ErrTemplateNotFound
		}
		ii := slices.IndexFunc(s.templates[i].Items, func(item models.TrainingTemplateItem) bool {
			return item.ID == itemID
		})
		if ii < 0 {
			return nil, ErrTrainingItemNotFound
		}
		s.templates[i].Items = slices.Delete(s.templates[i].Items, ii, ii+1)
		return []string{models.BlobTrainingTemplates}, nil
	})
}

// DeleteTemplate removes a template. Plans it was applied to keep their
// items; their template lookups fall back to ManualTemplateName.
func (s *Store) DeleteTemplate(id uuid.UUID) error {
	return s.mutate(func() ([]string, error) {
		i := s.templateIndexLocked(id)
		if i < 0 {
			return nil, ErrTemplateNotFound
		}
		s.templates = slices.Delete(s.templates, i, i+1)
		return []string{models.BlobTrainingTemplates}, nil
	})
}

// HasAppliedTemplate reports whether the template was applied on the day
// of date.
func (s *Store) HasAppliedTemplate(id uuid.UUID, date time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	pi := s.planIndexLocked(date)
	return pi >= 0 && s.plans[pi].HasTemplate(id)
}

// ApplyTemplate copies a template's items into the plan for the day of
// date with nothing completed. It reports false when the template was
// already applied that day, in which case nothing changes.
func (s *Store) ApplyTemplate(id uuid.UUID, date time.Time) (bool, error) {
	applied := false
	err := s.mutate(func() ([]string, error) {
		ti := s.templateIndexLocked(id)
		if ti < 0 {
			return nil, ErrTemplateNotFound
		}
		template := s.templates[ti]

		pi := s.planIndexLocked(date)
		if pi >= 0 && s.plans[pi].HasTemplate(id) {
			return nil, nil
		}
		if pi < 0 {
			s.plans = append(s.plans, s.newPlan(date))
			pi = len(s.plans) - 1
		}

		plan := &s.plans[pi]
		for _, src := range template.Items {
			templateID := template.ID
			plan.Items = append(plan.Items, models.TrainingItem{
				ID:          uuid.New(),
				TrickID:     src.TrickID,
				TrickName:   src.TrickName,
				Category:    src.Category,
				Difficulty:  src.Difficulty,
				TargetCount: max(src.TargetCount, 1),
				TemplateID:  &templateID,
			})
		}
		plan.AppliedTemplateIDs = append(plan.AppliedTemplateIDs, template.ID)
		sortPlans(s.plans)
		applied = true
		return []string{models.BlobTrainingPlans}, nil
	})
	return applied, err
}

// RemoveTemplateFromPlan takes back everything a template added to the
// day's plan. The template itself may already be deleted. A plan left
// without items is removed.
func (s *Store) RemoveTemplateFromPlan(id uuid.UUID, date time.Time) error {
	return s.mutate(func() ([]string, error) {
		pi := s.planIndexLocked(date)
		if pi < 0 {
			return nil, ErrPlanNotFound
		}
		plan := &s.plans[pi]

		before := len(plan.Items) + len(plan.AppliedTemplateIDs)
		plan.Items = slices.DeleteFunc(plan.Items, func(item models.TrainingItem) bool {
			return item.TemplateID != nil && *item.TemplateID == id
		})
		plan.AppliedTemplateIDs = slices.DeleteFunc(plan.AppliedTemplateIDs, func(applied uuid.UUID) bool {
			return applied == id
		})
		if len(plan.Items)+len(plan.AppliedTemplateIDs) == before {
			return nil, nil
		}
		if len(plan.Items) == 0 {
			s.plans = slices.Delete(s.plans, pi, pi+1)
		}
		return []string{models.BlobTrainingPlans}, nil
	})
}

// AppliedTemplates returns the still existing templates applied on the
// day of date.
func (s *Store) AppliedTemplates(date time.Time) []models.TrainingTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.planIndexLocked(date)
	if pi < 0 {
		return nil
	}
	var out []models.TrainingTemplate
	for _, t := range s.templates {
		if s.plans[pi].HasTemplate(t.ID) {
			out = append(out, cloneTemplate(t))
		}
	}
	return out
}

// TemplateName resolves a training item's template reference.
func (s *Store) TemplateName(id *uuid.UUID) string {
	if id == nil {
		return ManualTemplateName
	}
	if t, ok := s.Template(*id); ok {
		return t.Name
	}
	return ManualTemplateName
}

func (s *Store) templateIndexLocked(id uuid.UUID) int {
	return slices.IndexFunc(s.templates, func(t models.TrainingTemplate) bool {
		return t.ID == id
	})
}
