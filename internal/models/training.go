package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingTemplateItem is one line of a reusable training template.
type TrainingTemplateItem struct {
	ID          uuid.UUID  `json:"id"`
	TrickID     uuid.UUID  `json:"trickId"`
	TrickName   string     `json:"trickName"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	TargetCount int        `json:"targetCount"`
}

// TrainingTemplate is a named, undated plan definition.
type TrainingTemplate struct {
	ID    uuid.UUID              `json:"id"`
	Name  string                 `json:"name"`
	Items []TrainingTemplateItem `json:"items"`
}

// TrainingItem is a concrete repetition target on a given day.
// TrickID and TemplateID are weak references resolved by lookup; the
// trick fields are copies captured when the item was created.
type TrainingItem struct {
	ID             uuid.UUID  `json:"id"`
	TrickID        uuid.UUID  `json:"trickId"`
	TrickName      string     `json:"trickName"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	TargetCount    int        `json:"targetCount"`
	CompletedCount int        `json:"completedCount"`
	TemplateID     *uuid.UUID `json:"templateId,omitempty"`
}

// IsComplete reports whether the target has been reached.
func (i TrainingItem) IsComplete() bool {
	return i.CompletedCount >= i.TargetCount
}

// DailyTrainingPlan holds the training items for one calendar day.
type DailyTrainingPlan struct {
	Date               time.Time      `json:"date"`
	Items              []TrainingItem `json:"items"`
	AppliedTemplateIDs []uuid.UUID    `json:"appliedTemplateIds"`
}

// HasTemplate reports whether the template was applied to this plan.
func (p DailyTrainingPlan) HasTemplate(id uuid.UUID) bool {
	for _, applied := range p.AppliedTemplateIDs {
		if applied == id {
			return true
		}
	}
	return false
}
