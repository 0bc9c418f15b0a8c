package syncer

// Decision is what the governor wants done after a failed sync.
type Decision int

const (
	// Retry re-queues the failed operation without telling the user.
	Retry Decision = iota
	// Reveal arms a delayed, user-visible error.
	Reveal
)

// retryLimit is the number of consecutive failures after which errors are
// revealed instead of retried.
const retryLimit = 2

// Governor counts consecutive sync failures and hands out reveal tokens.
// Only the most recently armed token may reveal, and starting a new sync
// disarms it. A Governor is not safe for concurrent use.
type Governor struct {
	failures  int
	lastToken uint64
	armed     uint64
}

// RecordSuccess resets the failure count.
func (g *Governor) RecordSuccess() {
	g.failures = 0
}

// RecordFailure counts a failure. On Reveal it returns the armed token and
// resets the count.
func (g *Governor) RecordFailure() (Decision, uint64) {
	g.failures++
	if g.failures < retryLimit {
		return Retry, 0
	}
	g.failures = 0
	g.lastToken++
	g.armed = g.lastToken
	return Reveal, g.armed
}

// Supersede disarms any pending reveal.
func (g *Governor) Supersede() {
	g.armed = 0
}

// Claim reports whether token is still armed and disarms it if so.
func (g *Governor) Claim(token uint64) bool {
	if token == 0 || token != g.armed {
		return false
	}
	g.armed = 0
	return true
}

// Failures returns the current consecutive failure count.
func (g *Governor) Failures() int {
	return g.failures
}
