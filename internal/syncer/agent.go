// Package syncer keeps the local snapshot and the sync server in step:
// it debounces local changes into whole-snapshot pushes, pulls remote
// state on demand, and governs how sync failures reach the user.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asteroid-belt/trickplanner/internal/log"
	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var (
	// ErrNoToken is returned by sync calls made while signed out.
	ErrNoToken = errors.New("sync requires sign-in")
	// ErrClosed is returned once the agent has been closed.
	ErrClosed = errors.New("sync agent closed")

	errSuperseded = errors.New("superseded by a newer sync")
)

// Store is the local side of a sync.
type Store interface {
	Snapshot() models.Snapshot
	ApplySnapshot(snap models.Snapshot, mode planner.ApplyMode)
}

// Reloader is implemented by stores whose storage other processes also
// write. The agent re-reads such a store before every push.
type Reloader interface {
	Reload()
}

// Transport is the remote side of a sync.
type Transport interface {
	SetToken(token string)
	FetchSync(ctx context.Context) (models.Snapshot, error)
	PushSync(ctx context.Context, snap models.Snapshot) error
}

// MetaStore persists sync timestamps.
type MetaStore interface {
	GetSyncTime(key string) (time.Time, error)
	SetSyncMeta(key, value string) error
}

// Config holds agent timing and observers.
type Config struct {
	// Debounce is the quiet period after the last change before a push.
	Debounce time.Duration
	// Poll is how often a ready push re-checks for an in-flight sync.
	Poll time.Duration
	// ErrorDelay is how long a repeated failure waits before it is shown.
	ErrorDelay time.Duration

	Meta     MetaStore
	OnChange func(Status)
	OnResult func(Result)
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		Debounce:   800 * time.Millisecond,
		Poll:       200 * time.Millisecond,
		ErrorDelay: 1500 * time.Millisecond,
	}
}

// Agent schedules and runs syncs. At most one push or pull is in flight
// at a time. Agent implements planner.Notifier.
type Agent struct {
	store     Store
	transport Transport
	cfg       Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	signedIn    bool
	closed      bool
	queued      bool
	running     Op
	gen         uint64
	timer       *time.Timer
	revealTimer *time.Timer
	gov         Governor
	errMsg      string
	lastErr     error
	lastPush    time.Time
	lastPull    time.Time
}

// New creates an agent. It does nothing until SetToken installs a token.
func New(store Store, transport Transport, cfg Config) *Agent {
	defaults := DefaultConfig()
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaults.Debounce
	}
	if cfg.Poll <= 0 {
		cfg.Poll = defaults.Poll
	}
	if cfg.ErrorDelay <= 0 {
		cfg.ErrorDelay = defaults.ErrorDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Agent{
		store:     store,
		transport: transport,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
	}
	if cfg.Meta != nil {
		a.lastPush, _ = cfg.Meta.GetSyncTime(models.SyncMetaLastPush)
		a.lastPull, _ = cfg.Meta.GetSyncTime(models.SyncMetaLastPull)
	}
	return a
}

// SetToken installs the bearer token. An empty token signs out and drops
// any queued push.
func (a *Agent) SetToken(token string) {
	a.transport.SetToken(token)

	a.mu.Lock()
	a.signedIn = token != ""
	if !a.signedIn {
		a.dropQueueLocked()
		a.errMsg = ""
		a.gov = Governor{}
	}
	a.mu.Unlock()
	a.changed()
}

// ScheduleSync queues a push after the debounce window, restarting the
// window if one is already running. It is a no-op while signed out.
func (a *Agent) ScheduleSync() {
	a.schedule()
}

// Pull fetches the remote snapshot and replaces local state with it,
// waiting first for any in-flight sync.
func (a *Agent) Pull(ctx context.Context) error {
	return a.runNow(ctx, OpPull)
}

// Push sends the local snapshot now, waiting first for any in-flight sync.
func (a *Agent) Push(ctx context.Context) error {
	return a.runNow(ctx, OpPush)
}

// Flush runs any queued sync immediately, including a first-failure
// retry, and waits for in-flight work. It returns the error of the last
// attempt it observed.
func (a *Agent) Flush(ctx context.Context) error {
	attempted := false
	for {
		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			return ErrClosed
		}
		queued, running := a.queued, a.running
		a.mu.Unlock()

		if !queued {
			if running == OpNone {
				break
			}
			attempted = true
			if err := a.sleep(ctx); err != nil {
				return err
			}
			continue
		}

		op, err := a.acquire(ctx, func() (Op, bool) {
			return OpPush, a.queued
		})
		if errors.Is(err, errSuperseded) {
			continue
		}
		if err != nil {
			return err
		}
		attempted = true
		_ = a.execute(ctx, op)
	}

	if !attempted {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Run pulls once, then again every interval until ctx is done. Pulls are
// skipped while local changes wait to be pushed. Pending changes are
// flushed before Run returns.
func (a *Agent) Run(ctx context.Context, interval time.Duration) error {
	if err := a.Pull(ctx); err != nil {
		if errors.Is(err, ErrNoToken) || errors.Is(err, ErrClosed) {
			return err
		}
		log.Errorf("initial pull: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return a.Flush(flushCtx)
		case <-ticker.C:
			if a.Status().State == Queued {
				continue
			}
			if err := a.Pull(ctx); err != nil && ctx.Err() == nil {
				log.Debugf("periodic pull: %v", err)
			}
		}
	}
}

// Status returns the current state.
func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusLocked()
}

// Close stops pending timers and waits for an in-flight sync started by
// the scheduler. Queued changes are not pushed; call Flush first.
func (a *Agent) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.dropQueueLocked()
	if a.revealTimer != nil {
		a.revealTimer.Stop()
	}
	a.mu.Unlock()

	a.wg.Wait()
	a.cancel()
}

func (a *Agent) schedule() {
	a.mu.Lock()
	if a.closed || !a.signedIn {
		a.mu.Unlock()
		return
	}
	a.scheduleLocked()
	a.mu.Unlock()
	a.changed()
}

// scheduleLocked (re)starts the debounce window for a push.
func (a *Agent) scheduleLocked() {
	a.queued = true
	a.errMsg = ""
	a.gov.Supersede()

	a.gen++
	gen := a.gen
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.cfg.Debounce, func() {
		a.fire(gen)
	})
}

// fire runs when a debounce window closes without being restarted.
func (a *Agent) fire(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.wg.Add(1)
	a.mu.Unlock()
	defer a.wg.Done()

	op, err := a.acquire(a.ctx, func() (Op, bool) {
		return OpPush, gen == a.gen && a.queued
	})
	if err != nil {
		return
	}
	_ = a.execute(a.ctx, op)
}

func (a *Agent) runNow(ctx context.Context, op Op) error {
	a.mu.Lock()
	signedIn := a.signedIn
	a.mu.Unlock()
	if !signedIn {
		return ErrNoToken
	}

	got, err := a.acquire(ctx, func() (Op, bool) {
		return op, true
	})
	if err != nil {
		return err
	}
	return a.execute(ctx, got)
}

// acquire waits until no sync is in flight, then claims the slot for the
// operation pick returns. pick runs under the lock; returning false
// abandons the wait.
func (a *Agent) acquire(ctx context.Context, pick func() (Op, bool)) (Op, error) {
	for {
		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			return OpNone, ErrClosed
		}
		op, ok := pick()
		if !ok || op == OpNone {
			a.mu.Unlock()
			return OpNone, errSuperseded
		}
		if a.running == OpNone {
			a.beginLocked(op)
			a.mu.Unlock()
			a.changed()
			return op, nil
		}
		a.mu.Unlock()

		if err := a.sleep(ctx); err != nil {
			return OpNone, err
		}
	}
}

// beginLocked marks op in flight. Starting any sync hides the current
// error and disarms a pending reveal. A push consumes the queue.
func (a *Agent) beginLocked(op Op) {
	a.running = op
	a.errMsg = ""
	a.gov.Supersede()
	if op == OpPush {
		a.dropQueueLocked()
	}
}

func (a *Agent) dropQueueLocked() {
	a.queued = false
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Agent) execute(ctx context.Context, op Op) error {
	start := time.Now()

	var err error
	switch op {
	case OpPush:
		if r, ok := a.store.(Reloader); ok {
			r.Reload()
		}
		err = a.transport.PushSync(ctx, a.store.Snapshot())
	case OpPull:
		var snap models.Snapshot
		snap, err = a.transport.FetchSync(ctx)
		if err == nil {
			a.store.ApplySnapshot(snap, planner.ApplyFromRemote)
		}
	}

	finished := time.Now()
	a.finish(op, err, finished)
	if a.cfg.OnResult != nil {
		a.cfg.OnResult(Result{Op: op, Err: err, Duration: finished.Sub(start)})
	}
	return err
}

// finish records the outcome of op and applies the failure policy.
func (a *Agent) finish(op Op, err error, at time.Time) {
	metaKey := ""

	a.mu.Lock()
	a.running = OpNone
	a.lastErr = err
	if err == nil {
		a.gov.RecordSuccess()
		if op == OpPush {
			a.lastPush = at
			metaKey = models.SyncMetaLastPush
		} else {
			a.lastPull = at
			metaKey = models.SyncMetaLastPull
		}
	} else {
		decision, token := a.gov.RecordFailure()
		switch {
		case decision == Retry:
			// A first failure of either operation queues a push, as a
			// local change would.
			log.Debugf("sync %s failed, queueing push: %v", op, err)
			if a.signedIn && !a.closed {
				a.scheduleLocked()
			}
		case !a.closed:
			log.Debugf("sync %s failed again, error armed: %v", op, err)
			msg := err.Error()
			if a.revealTimer != nil {
				a.revealTimer.Stop()
			}
			a.revealTimer = time.AfterFunc(a.cfg.ErrorDelay, func() {
				a.reveal(token, msg)
			})
		}
	}
	a.mu.Unlock()

	if metaKey != "" && a.cfg.Meta != nil {
		if err := a.cfg.Meta.SetSyncMeta(metaKey, at.UTC().Format(time.RFC3339)); err != nil {
			log.Debugf("record %s: %v", metaKey, err)
		}
	}
	a.changed()
}

// reveal shows msg only if token is still the armed one and the agent is
// neither syncing nor queued.
func (a *Agent) reveal(token uint64, msg string) {
	a.mu.Lock()
	shown := !a.closed && a.running == OpNone && !a.queued && a.gov.Claim(token)
	if shown {
		a.errMsg = msg
	}
	a.mu.Unlock()

	if shown {
		log.Debugf("sync error shown: %s", msg)
		a.changed()
	}
}

func (a *Agent) statusLocked() Status {
	state := Idle
	switch {
	case a.running == OpPush:
		state = Pushing
	case a.running == OpPull:
		state = Pulling
	case a.queued:
		state = Queued
	}
	return Status{
		State:    state,
		Err:      a.errMsg,
		LastPush: a.lastPush,
		LastPull: a.lastPull,
		Failures: a.gov.Failures(),
		SignedIn: a.signedIn,
	}
}

func (a *Agent) changed() {
	if a.cfg.OnChange != nil {
		a.cfg.OnChange(a.Status())
	}
}

func (a *Agent) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.cfg.Poll):
		return nil
	}
}
