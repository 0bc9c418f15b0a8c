package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var errAmbiguous = errors.New("ambiguous reference")

// shortIDLen is how much of an id list output shows.
const shortIDLen = 8

// minPrefixLen is the shortest id prefix accepted as a reference.
const minPrefixLen = 4

const dayLayout = "2006-01-02"

func shortID(id uuid.UUID) string {
	return id.String()[:shortIDLen]
}

// matchRef finds the one item whose name equals ref ignoring case, or
// failing that, whose id starts with ref.
func matchRef[T any](ref string, items []T, id func(T) uuid.UUID, name func(T) string, notFound error) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)

	var named []T
	for _, item := range items {
		if name != nil && strings.EqualFold(name(item), ref) {
			named = append(named, item)
		}
	}
	switch len(named) {
	case 1:
		return named[0], nil
	case 0:
	default:
		return zero, fmt.Errorf("%w: %d matches for %q, use the id", errAmbiguous, len(named), ref)
	}

	if len(ref) < minPrefixLen {
		return zero, fmt.Errorf("%w: %q", notFound, ref)
	}
	prefix := strings.ToLower(ref)
	var byID []T
	for _, item := range items {
		if strings.HasPrefix(id(item).String(), prefix) {
			byID = append(byID, item)
		}
	}
	switch len(byID) {
	case 1:
		return byID[0], nil
	case 0:
		return zero, fmt.Errorf("%w: %q", notFound, ref)
	default:
		return zero, fmt.Errorf("%w: %d ids start with %q", errAmbiguous, len(byID), ref)
	}
}

func (a *app) resolveTrick(ref string) (models.Trick, error) {
	return matchRef(ref, a.store.Tricks(),
		func(t models.Trick) uuid.UUID { return t.ID },
		func(t models.Trick) string { return t.Name },
		planner.ErrTrickNotFound)
}

func (a *app) resolveTemplate(ref string) (models.TrainingTemplate, error) {
	return matchRef(ref, a.store.Templates(),
		func(t models.TrainingTemplate) uuid.UUID { return t.ID },
		func(t models.TrainingTemplate) string { return t.Name },
		planner.ErrTemplateNotFound)
}

func (a *app) resolveChallenge(ref string) (models.Challenge, error) {
	return matchRef(ref, a.store.Challenges(),
		func(c models.Challenge) uuid.UUID { return c.ID },
		nil,
		planner.ErrChallengeNotFound)
}

// resolveTrainingItem matches an item on day by trick name or item id.
func (a *app) resolveTrainingItem(ref string, day time.Time) (models.TrainingItem, error) {
	return matchRef(ref, a.store.TrainingItems(day),
		func(i models.TrainingItem) uuid.UUID { return i.ID },
		func(i models.TrainingItem) string { return i.TrickName },
		planner.ErrTrainingItemNotFound)
}

func (a *app) resolveTemplateItem(t models.TrainingTemplate, ref string) (models.TrainingTemplateItem, error) {
	return matchRef(ref, t.Items,
		func(i models.TrainingTemplateItem) uuid.UUID { return i.ID },
		func(i models.TrainingTemplateItem) string { return i.TrickName },
		planner.ErrTrainingItemNotFound)
}

// parseDay reads a calendar day in the store's time zone. Empty means
// today.
func (a *app) parseDay(s string) (time.Time, error) {
	today := a.store.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	day, err := time.ParseInLocation(dayLayout, strings.TrimSpace(s), a.store.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD, today, yesterday or tomorrow", s)
	}
	return day, nil
}

func parseDifficulty(s string) (models.Difficulty, error) {
	d, ok := models.ParseDifficulty(s)
	if !ok {
		return "", fmt.Errorf("%w: %q (want none, easy, medium or hard)", planner.ErrInvalidDifficulty, s)
	}
	return d, nil
}
