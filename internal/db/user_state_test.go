package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_SaveLoadClear(t *testing.T) {
	db := testDB(t)

	token, email, err := db.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, email)

	require.NoError(t, db.SaveToken("tok-123", "rider@example.com"))

	token, email, err = db.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "rider@example.com", email)

	state, err := db.GetUserState()
	require.NoError(t, err)
	assert.True(t, state.IsSignedIn())

	require.NoError(t, db.ClearToken())

	token, _, err = db.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestGetOrCreateTrackingID_Stable(t *testing.T) {
	db := testDB(t)

	first := db.GetOrCreateTrackingID()
	require.NotEmpty(t, first)

	second := db.GetOrCreateTrackingID()
	assert.Equal(t, first, second)
}

func TestSaveToken_KeepsTrackingID(t *testing.T) {
	db := testDB(t)

	id := db.GetOrCreateTrackingID()
	require.NoError(t, db.SaveToken("tok", "a@b.c"))

	assert.Equal(t, id, db.GetOrCreateTrackingID())
}
