package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
	"github.com/asteroid-belt/trickplanner/internal/testutil"
)

func newTestClient(server *testutil.SyncServer) *Client {
	return New(Config{
		BaseURL:           server.URL + "/",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
	})
}

func TestRegisterThenLogin(t *testing.T) {
	server := testutil.NewSyncServer(t)
	client := newTestClient(server)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, "sk8@example.com", "secret"))

	token, err := client.Login(ctx, "sk8@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, testutil.TokenFor("sk8@example.com"), token)
	assert.Empty(t, client.Token(), "login does not install the token")
}

func TestRegister_DuplicateCarriesBody(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser("sk8@example.com", "secret")
	client := newTestClient(server)

	err := client.Register(context.Background(), "sk8@example.com", "other")

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "register", remoteErr.Op)
	assert.Equal(t, http.StatusBadRequest, remoteErr.StatusCode)
	assert.Contains(t, err.Error(), "register failed: 400")
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestLogin_WrongPassword(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser("sk8@example.com", "secret")
	client := newTestClient(server)

	_, err := client.Login(context.Background(), "sk8@example.com", "nope")

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
}

func TestLogin_SendsFormAndRequiresToken(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, RequestsPerSecond: 1000})
	_, err := client.Login(context.Background(), "a@b.c", "p w")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token")
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "password=p+w&username=a%40b.c", gotBody)
}

func TestSync_RequiresToken(t *testing.T) {
	server := testutil.NewSyncServer(t)
	client := newTestClient(server)

	_, err := client.FetchSync(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, client.PushSync(context.Background(), models.Snapshot{}), ErrNotAuthenticated)
	assert.Zero(t, server.FetchCount())
}

func TestPushThenFetch(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser("sk8@example.com", "secret")
	client := newTestClient(server)
	client.SetToken(testutil.TokenFor("sk8@example.com"))
	ctx := context.Background()

	snap := models.Snapshot{
		Categories: []string{"Flips", "Uncategorized"},
		Tricks:     []models.Trick{models.NewTrick("Kickflip", "Flips", models.DifficultyMedium)},
	}
	require.NoError(t, client.PushSync(ctx, snap))

	pushes := server.Pushes()
	require.Len(t, pushes, 1)
	assert.True(t, strings.HasPrefix(pushes[0], `{"categories":["Flips","Uncategorized"],"challenges":[]`), pushes[0])

	got, err := client.FetchSync(ctx)
	require.NoError(t, err)
	snap.Normalize()
	assert.Equal(t, snap, got)
}

func TestFetchSync_Non200(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser("sk8@example.com", "secret")
	server.FailSync(http.StatusServiceUnavailable)
	client := newTestClient(server)
	client.SetToken(testutil.TokenFor("sk8@example.com"))

	_, err := client.FetchSync(context.Background())

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "sync fetch", remoteErr.Op)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
	assert.Equal(t, "sync fetch failed: 503 sync unavailable", err.Error())
}

func TestFetchSync_BadTokenIsUnauthorized(t *testing.T) {
	server := testutil.NewSyncServer(t)
	client := newTestClient(server)
	client.SetToken("forged")

	_, err := client.FetchSync(context.Background())

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
}

func TestFetchSync_DecodeErrorIsTransportError(t *testing.T) {
	server := testutil.NewSyncServer(t)
	server.AddUser("sk8@example.com", "secret")
	server.SetSnapshot(`{"tricks": "nope"}`)
	client := newTestClient(server)
	client.SetToken(testutil.TokenFor("sk8@example.com"))

	_, err := client.FetchSync(context.Background())

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	var decodeErr *planner.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(Config{BaseURL: url, RequestsPerSecond: 1000})
	err := client.Register(context.Background(), "a@b.c", "pw")

	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestSetToken_EmptySignsOut(t *testing.T) {
	client := New(Config{BaseURL: "http://localhost"})
	client.SetToken("abc")
	assert.Equal(t, "abc", client.Token())

	client.SetToken("")
	_, err := client.FetchSync(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestError_TruncatesLongBodies(t *testing.T) {
	err := &Error{Op: "sync push", StatusCode: 500, Body: strings.Repeat("x", 2000)}
	assert.Less(t, len(err.Error()), 600)
	assert.True(t, strings.HasSuffix(err.Error(), "..."))
}

func TestError_TruncatesOnRuneBoundary(t *testing.T) {
	// Each "é" is two bytes starting at an odd offset, so byte 512 is mid-rune.
	err := &Error{Op: "sync push", StatusCode: 500, Body: "x" + strings.Repeat("é", 600)}
	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, "é..."))
	assert.Equal(t, maxErrorBody-1, len(strings.TrimSuffix(strings.TrimPrefix(msg, "sync push failed: 500 "), "...")))
}
