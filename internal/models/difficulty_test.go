package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficulty_Rank(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		expected   int
	}{
		{DifficultyNone, 0},
		{DifficultyEasy, 1},
		{DifficultyMedium, 2},
		{DifficultyHard, 3},
		{Difficulty("legendary"), 0},
		{Difficulty(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.difficulty.Rank())
		})
	}
}

func TestDifficulty_AtMost(t *testing.T) {
	assert.True(t, DifficultyEasy.AtMost(DifficultyEasy))
	assert.True(t, DifficultyNone.AtMost(DifficultyEasy))
	assert.False(t, DifficultyMedium.AtMost(DifficultyEasy))
	assert.True(t, DifficultyHard.AtMost(DifficultyHard))
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
		ok    bool
	}{
		{"easy", DifficultyEasy, true},
		{" HARD ", DifficultyHard, true},
		{"", DifficultyNone, true},
		{"impossible", Difficulty("impossible"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTrick_UnmarshalDefaultsDifficulty(t *testing.T) {
	var missing Trick
	err := json.Unmarshal([]byte(`{"id":"00000000-0000-0000-0000-000000000001","name":"Ollie","category":"Old School"}`), &missing)
	require.NoError(t, err)
	assert.Equal(t, DifficultyNone, missing.Difficulty)
	assert.Equal(t, "Ollie", missing.Name)

	var unknown Trick
	err = json.Unmarshal([]byte(`{"id":"00000000-0000-0000-0000-000000000002","name":"Kickflip","category":"Flips","difficulty":"insane"}`), &unknown)
	require.NoError(t, err)
	assert.Equal(t, DifficultyNone, unknown.Difficulty)

	var known Trick
	err = json.Unmarshal([]byte(`{"id":"00000000-0000-0000-0000-000000000003","name":"Heelflip","category":"Flips","difficulty":"medium"}`), &known)
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, known.Difficulty)
}

func TestChallengeStatus_IsValid(t *testing.T) {
	assert.True(t, ChallengeNotDone.IsValid())
	assert.True(t, ChallengeSuccess.IsValid())
	assert.True(t, ChallengeFail.IsValid())
	assert.False(t, ChallengeStatus("done").IsValid())
	assert.Equal(t, "Not Done", ChallengeNotDone.DisplayName())
}

func TestSnapshot_NormalizeEncodesEmptyLists(t *testing.T) {
	var s Snapshot
	s.Normalize()

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":[],"tricks":[],"templates":[],"challenges":[],"trainingPlans":[]}`, string(data))
}
