package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/config"
	"github.com/asteroid-belt/trickplanner/internal/db"
	"github.com/asteroid-belt/trickplanner/internal/filestore"
	"github.com/asteroid-belt/trickplanner/internal/log"
	"github.com/asteroid-belt/trickplanner/internal/planner"
	"github.com/asteroid-belt/trickplanner/internal/remote"
	"github.com/asteroid-belt/trickplanner/internal/session"
	"github.com/asteroid-belt/trickplanner/internal/syncer"
)

// flushTimeout bounds how long a command waits for its pending push.
const flushTimeout = 30 * time.Second

// app is everything one command invocation needs, opened in dependency
// order and closed in reverse.
type app struct {
	ctx     context.Context
	cfg     *config.Config
	db      *db.DB
	store   *planner.Store
	client  *remote.Client
	agent   *syncer.Agent
	session *session.Manager
	out     io.Writer

	mu        sync.Mutex
	onStatus  func(syncer.Status)
	closeOnce sync.Once
}

func openApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newApp(ctx, cfg, out)
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	paths := config.GetPaths(cfg)

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	var blobs planner.BlobStore = database
	if cfg.Storage.Backend == config.StorageFile {
		blobs = filestore.New(paths.Data)
	}
	store := planner.New(blobs)
	a := &app{ctx: ctx, cfg: cfg, db: database, store: store, out: out}

	client := remote.New(remote.Config{
		BaseURL:           cfg.Server.URL,
		Timeout:           cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
	})
	agent := syncer.New(store, client, syncer.Config{
		Debounce:   cfg.Sync.Debounce,
		Poll:       cfg.Sync.Poll,
		ErrorDelay: cfg.Sync.ErrorDelay,
		Meta:       database,
		OnChange:   a.statusChanged,
		OnResult:   trackSyncResult,
	})
	store.SetNotifier(agent)

	sess, err := session.New(client, database, agent)
	if err != nil {
		agent.Close()
		_ = database.Close()
		return nil, err
	}

	a.client = client
	a.agent = agent
	a.session = sess
	return a, nil
}

// Close pushes pending changes when signed in, then releases everything.
// A failed push only warns: the change is already saved locally.
// Calls after the first do nothing.
func (a *app) Close() {
	a.closeOnce.Do(a.close)
}

func (a *app) close() {
	if a.session.LoggedIn() {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		err := a.agent.Flush(ctx)
		cancel()
		if err != nil && !errors.Is(err, syncer.ErrClosed) {
			log.Debugf("flush on exit: %v", err)
			fmt.Fprintln(a.out, warnStyle.Render(fmt.Sprintf("⚠️  Saved locally, sync failed: %v", err)))
		}
	}
	a.agent.Close()
	_ = a.db.Close()
}

// withApp opens the app, runs fn and closes the app, tracking any error
// under name.
func withApp(cmd *cobra.Command, name string, fn func(a *app) error) error {
	a, err := openApp(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return trackCLIError(name, err)
	}
	telemetryClient.TrackAppStarted(name, a.session.LoggedIn())
	err = fn(a)
	a.Close()
	return trackCLIError(name, err)
}

// watchStatus installs fn as the sync status observer. Pass nil to stop.
func (a *app) watchStatus(fn func(syncer.Status)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onStatus = fn
}

func (a *app) statusChanged(s syncer.Status) {
	a.mu.Lock()
	fn := a.onStatus
	a.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func trackSyncResult(r syncer.Result) {
	if r.Err != nil {
		telemetryClient.TrackSyncFailed(r.Op.String(), classifyError(r.Err))
		return
	}
	switch r.Op {
	case syncer.OpPush:
		telemetryClient.TrackSyncPushed(r.Duration.Milliseconds())
	case syncer.OpPull:
		telemetryClient.TrackSyncPulled(r.Duration.Milliseconds())
	}
}

func (a *app) requireLogin() error {
	if !a.session.LoggedIn() {
		return fmt.Errorf("%w: run 'trickplanner login' first", session.ErrNotLoggedIn)
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
