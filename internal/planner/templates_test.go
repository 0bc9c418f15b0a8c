package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

func newTemplateWithItems(t *testing.T, s *Store, name string, tricks ...string) models.TrainingTemplate {
	t.Helper()
	template, err := s.AddTemplate(name)
	require.NoError(t, err)
	for _, trickName := range tricks {
		_, err := s.AddTemplateItem(template.ID, trickByName(t, s, trickName).ID, 3)
		require.NoError(t, err)
	}
	got, ok := s.Template(template.ID)
	require.True(t, ok)
	return got
}

func TestTemplates_SortedByNameIgnoringCase(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())

	for _, name := range []string{"warmup", "Bowl day", "street Session"} {
		_, err := s.AddTemplate(name)
		require.NoError(t, err)
	}

	var got []string
	for _, tmpl := range s.Templates() {
		got = append(got, tmpl.Name)
	}
	assert.Equal(t, []string{"Bowl day", "street Session", "warmup"}, got)

	_, err := s.AddTemplate("  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestApplyTemplate_IsIdempotent(t *testing.T) {
	s, notifier := newTestStore(t, newMemBlobs())
	template := newTemplateWithItems(t, s, "Flatground", "Ollie", "Kickflip")
	base := notifier.count()

	applied, err := s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)
	assert.True(t, applied)
	once := s.TrainingItems(testDay)

	applied, err = s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, once, s.TrainingItems(testDay))
	assert.Equal(t, base+1, notifier.count())
	assert.True(t, s.HasAppliedTemplate(template.ID, testDay))
	assert.False(t, s.HasAppliedTemplate(template.ID, testDay.AddDate(0, 0, 1)))

	require.Len(t, once, 2)
	for _, item := range once {
		require.NotNil(t, item.TemplateID)
		assert.Equal(t, template.ID, *item.TemplateID)
		assert.Equal(t, 0, item.CompletedCount)
		assert.Equal(t, 3, item.TargetCount)
	}
}

func TestApplyTemplate_NotFound(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	_, err := s.ApplyTemplate(uuid.New(), testDay)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRemoveTemplateFromPlan(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	template := newTemplateWithItems(t, s, "Flatground", "Ollie", "Kickflip")
	manual := trickByName(t, s, "Manual")

	_, err := s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)
	_, err = s.AddTrainingItem(manual.ID, 2, testDay)
	require.NoError(t, err)

	require.NoError(t, s.RemoveTemplateFromPlan(template.ID, testDay))
	items := s.TrainingItems(testDay)
	require.Len(t, items, 1)
	assert.Equal(t, "Manual", items[0].TrickName)
	assert.False(t, s.HasAppliedTemplate(template.ID, testDay))

	_, err = s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)
	require.NoError(t, s.ClearTraining(testDay))
	_, err = s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)
	require.NoError(t, s.RemoveTemplateFromPlan(template.ID, testDay))
	_, ok := s.TrainingPlan(testDay)
	assert.False(t, ok, "plan without items is removed")

	assert.ErrorIs(t, s.RemoveTemplateFromPlan(template.ID, testDay), ErrPlanNotFound)
}

func TestDeleteTemplate_KeepsAppliedItems(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	template := newTemplateWithItems(t, s, "Flatground", "Ollie")
	_, err := s.ApplyTemplate(template.ID, testDay)
	require.NoError(t, err)

	assert.Equal(t, "Flatground", s.TemplateName(&template.ID))
	assert.Len(t, s.AppliedTemplates(testDay), 1)

	require.NoError(t, s.DeleteTemplate(template.ID))

	items := s.TrainingItems(testDay)
	require.Len(t, items, 1)
	assert.Equal(t, ManualTemplateName, s.TemplateName(items[0].TemplateID))
	assert.Equal(t, ManualTemplateName, s.TemplateName(nil))
	assert.Empty(t, s.AppliedTemplates(testDay))
	assert.ErrorIs(t, s.DeleteTemplate(template.ID), ErrTemplateNotFound)
}

func TestUpdateTemplate(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	template := newTemplateWithItems(t, s, "Flatground", "Ollie")
	ollie := trickByName(t, s, "Ollie")

	template.Name = "  Flat  "
	template.Items[0].TargetCount = 0
	template.Items = append(template.Items, models.TrainingTemplateItem{
		TrickID:     ollie.ID,
		TrickName:   ollie.Name,
		Category:    ollie.Category,
		Difficulty:  ollie.Difficulty,
		TargetCount: 4,
	})

	updated, err := s.UpdateTemplate(template)
	require.NoError(t, err)
	assert.Equal(t, "Flat", updated.Name)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, 1, updated.Items[0].TargetCount)
	assert.NotEqual(t, uuid.Nil, updated.Items[1].ID)

	stored, ok := s.Template(template.ID)
	require.True(t, ok)
	assert.Equal(t, updated, stored)

	template.Name = ""
	_, err = s.UpdateTemplate(template)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = s.UpdateTemplate(models.TrainingTemplate{ID: uuid.New(), Name: "x"})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRemoveTemplateItem(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	template := newTemplateWithItems(t, s, "Flatground", "Ollie", "Kickflip")

	require.NoError(t, s.RemoveTemplateItem(template.ID, template.Items[0].ID))
	got, _ := s.Template(template.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Kickflip", got.Items[0].TrickName)

	assert.ErrorIs(t, s.RemoveTemplateItem(template.ID, uuid.New()), ErrTrainingItemNotFound)
	_, err := s.AddTemplateItem(template.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrTrickNotFound)
}
