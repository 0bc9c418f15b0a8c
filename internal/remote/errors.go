package remote

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNotAuthenticated is returned by sync calls made without a token.
var ErrNotAuthenticated = errors.New("not signed in")

// Error is a failed call to the sync server: either a non-200 response
// or a transport failure.
type Error struct {
	// Op names the call, e.g. "login" or "sync push".
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s failed: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.StatusCode, body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const maxErrorBody = 512
