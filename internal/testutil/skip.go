// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// SkipLiveServerTests skips the test unless TRICKPLANNER_LIVE_SERVER points
// at a running sync server, and returns that server's URL.
//
// Run live tests with: TRICKPLANNER_LIVE_SERVER=http://localhost:8000 go test ./...
func SkipLiveServerTests(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TRICKPLANNER_LIVE_SERVER")
	if url == "" {
		t.Skip("Skipping live server test (set TRICKPLANNER_LIVE_SERVER to run)")
	}
	return url
}
