package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

func TestAddChallenge_NormalizesDateAndSortsNewestFirst(t *testing.T) {
	s, notifier := newTestStore(t, newMemBlobs())
	ollie := trickByName(t, s, "Ollie")

	older, err := s.AddChallenge([]models.Trick{ollie}, testDay.AddDate(0, 0, -3).Add(9*time.Hour))
	require.NoError(t, err)
	newer, err := s.AddChallenge([]models.Trick{ollie}, testDay.Add(23*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, testDay, newer.Date)
	assert.Equal(t, models.ChallengeNotDone, newer.Status)

	all := s.Challenges()
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)
	assert.Len(t, s.ChallengesOn(testDay.Add(time.Hour)), 1)
	assert.Equal(t, 2, notifier.count())
}

func TestUpdateChallengeStatus(t *testing.T) {
	s, notifier := newTestStore(t, newMemBlobs())
	challenge, err := s.AddChallenge(s.TricksInCategory("Flips"), testDay)
	require.NoError(t, err)

	require.NoError(t, s.UpdateChallengeStatus(challenge.ID, models.ChallengeSuccess))
	require.NoError(t, s.UpdateChallengeStatus(challenge.ID, models.ChallengeSuccess))
	got, _ := s.Challenge(challenge.ID)
	assert.Equal(t, models.ChallengeSuccess, got.Status)
	assert.Equal(t, 2, notifier.count(), "repeating a status is a no-op")

	assert.ErrorIs(t, s.UpdateChallengeStatus(challenge.ID, "maybe"), ErrInvalidStatus)
	assert.ErrorIs(t, s.UpdateChallengeStatus(uuid.New(), models.ChallengeFail), ErrChallengeNotFound)
}

func TestDeleteChallengesOn_OnlyThatDay(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	combo := s.TricksInCategory("Grinds")
	today, err := s.AddChallenge(combo, testDay)
	require.NoError(t, err)
	yesterday, err := s.AddChallenge(combo, testDay.AddDate(0, 0, -1))
	require.NoError(t, err)

	assert.Equal(t, 1, s.DeleteChallengesOn(testDay, today.ID, yesterday.ID))
	_, ok := s.Challenge(yesterday.ID)
	assert.True(t, ok)

	require.NoError(t, s.DeleteChallenge(yesterday.ID))
	assert.ErrorIs(t, s.DeleteChallenge(yesterday.ID), ErrChallengeNotFound)
	assert.Empty(t, s.Challenges())
}

func TestSuccessRate(t *testing.T) {
	s, _ := newTestStore(t, newMemBlobs())
	assert.Zero(t, s.SuccessRate())

	statuses := []models.ChallengeStatus{
		models.ChallengeSuccess,
		models.ChallengeSuccess,
		models.ChallengeFail,
		models.ChallengeNotDone,
	}
	for _, status := range statuses {
		c, err := s.AddChallenge(nil, testDay)
		require.NoError(t, err)
		require.NoError(t, s.UpdateChallengeStatus(c.ID, status))
	}

	assert.InDelta(t, 2.0/3.0, s.SuccessRate(), 1e-9)
}
