package remote

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/testutil"
)

func TestLive_RegisterPushFetch(t *testing.T) {
	url := testutil.SkipLiveServerTests(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := New(Config{BaseURL: url, Timeout: 10 * time.Second, RequestsPerSecond: 5})
	email := fmt.Sprintf("live-%s@example.com", uuid.NewString()[:8])

	require.NoError(t, c.Register(ctx, email, "live-password"))
	token, err := c.Login(ctx, email, "live-password")
	require.NoError(t, err)
	c.SetToken(token)

	snap := models.Snapshot{
		Categories: []string{"Flips", "Uncategorized"},
		Tricks:     []models.Trick{models.NewTrick("Kickflip", "Flips", models.DifficultyEasy)},
	}
	require.NoError(t, c.PushSync(ctx, snap))

	got, err := c.FetchSync(ctx)
	require.NoError(t, err)
	require.Len(t, got.Tricks, 1)
	assert.Equal(t, "Kickflip", got.Tricks[0].Name)
	assert.Equal(t, snap.Tricks[0].ID, got.Tricks[0].ID)
}
