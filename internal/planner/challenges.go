package planner

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// AddChallenge records a combo attempt on the day of date. The combo is
// copied so later trick edits do not rewrite history.
func (s *Store) AddChallenge(combo []models.Trick, date time.Time) (models.Challenge, error) {
	challenge := models.Challenge{
		ID:     uuid.New(),
		Date:   startOfDay(date, s.loc),
		Combo:  append([]models.Trick{}, combo...),
		Status: models.ChallengeNotDone,
	}

	err := s.mutate(func() ([]string, error) {
		s.challenges = append(s.challenges, challenge)
		sortChallenges(s.challenges)
		return []string{models.BlobChallenges}, nil
	})
	return cloneChallenge(challenge), err
}

// UpdateChallengeStatus marks a challenge. Setting the current status
// again is a no-op.
func (s *Store) UpdateChallengeStatus(id uuid.UUID, status models.ChallengeStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	return s.mutate(func() ([]string, error) {
		i := s.challengeIndexLocked(id)
		if i < 0 {
			return nil, ErrChallengeNotFound
		}
		if s.challenges[i].Status == status {
			return nil, nil
		}
		s.challenges[i].Status = status
		return []string{models.BlobChallenges}, nil
	})
}

// DeleteChallenge removes a challenge by id.
func (s *Store) DeleteChallenge(id uuid.UUID) error {
	return s.mutate(func() ([]string, error) {
		i := s.challengeIndexLocked(id)
		if i < 0 {
			return nil, ErrChallengeNotFound
		}
		s.challenges = slices.Delete(s.challenges, i, i+1)
		return []string{models.BlobChallenges}, nil
	})
}

// DeleteChallengesOn removes the listed challenges that fall on the day of
// date and reports how many were removed.
func (s *Store) DeleteChallengesOn(date time.Time, ids ...uuid.UUID) int {
	removed := 0
	_ = s.mutate(func() ([]string, error) {
		before := len(s.challenges)
		s.challenges = slices.DeleteFunc(s.challenges, func(c models.Challenge) bool {
			return sameDay(c.Date, date, s.loc) && slices.Contains(ids, c.ID)
		})
		removed = before - len(s.challenges)
		if removed == 0 {
			return nil, nil
		}
		return []string{models.BlobChallenges}, nil
	})
	return removed
}

// Challenges returns every challenge, newest first.
func (s *Store) Challenges() []models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		out = append(out, cloneChallenge(c))
	}
	return out
}

// ChallengesOn returns the challenges recorded on the day of date.
func (s *Store) ChallengesOn(date time.Time) []models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Challenge
	for _, c := range s.challenges {
		if sameDay(c.Date, date, s.loc) {
			out = append(out, cloneChallenge(c))
		}
	}
	return out
}

// Challenge looks up a challenge by id.
func (s *Store) Challenge(id uuid.UUID) (models.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.challengeIndexLocked(id); i >= 0 {
		return cloneChallenge(s.challenges[i]), true
	}
	return models.Challenge{}, false
}

// SuccessRate is the share of decided challenges that succeeded, or 0
// when none are decided.
func (s *Store) SuccessRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var success, decided int
	for _, c := range s.challenges {
		switch c.Status {
		case models.ChallengeSuccess:
			success++
			decided++
		case models.ChallengeFail:
			decided++
		}
	}
	if decided == 0 {
		return 0
	}
	return float64(success) / float64(decided)
}

func (s *Store) challengeIndexLocked(id uuid.UUID) int {
	return slices.IndexFunc(s.challenges, func(c models.Challenge) bool {
		return c.ID == id
	})
}
