package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/syncer"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Keep syncing in the foreground",
	Long: `Pull on start, then pull again on an interval until interrupted.
Changes made by other trickplanner commands are pushed by those commands;
the agent keeps this machine current with edits made elsewhere.

Examples:
  trickplanner agent
  trickplanner agent --interval 1m`,
	Args: cobra.NoArgs,
	RunE: runAgent,
}

var agentInterval time.Duration

func init() {
	agentCmd.Flags().DurationVar(&agentInterval, "interval", 0, "Pull interval (default TRICKPLANNER_PULL_INTERVAL)")
}

func runAgent(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "agent", func(a *app) error {
		return a.runAgent(agentInterval)
	})
}

func (a *app) runAgent(interval time.Duration) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if interval <= 0 {
		interval = a.cfg.Sync.PullInterval
	}

	last := a.agent.Status()
	a.watchStatus(func(s syncer.Status) {
		a.mu.Lock()
		prev := last
		last = s
		a.mu.Unlock()
		a.printStatusChange(prev, s)
	})
	defer a.watchStatus(nil)

	a.printf("🛹 Syncing with %s every %s. Ctrl+C to stop.\n", a.cfg.Server.URL, interval)
	err := a.agent.Run(a.ctx, interval)
	a.println("Stopped.")
	return err
}

func (a *app) printStatusChange(prev, s syncer.Status) {
	stamp := mutedStyle.Render(time.Now().Format("15:04:05"))
	switch {
	case s.Err != "" && s.Err != prev.Err:
		a.printf("%s %s\n", stamp, errorStyle.Render("✗ "+s.Err))
	case s.LastPull.After(prev.LastPull):
		a.printf("%s ✓ pulled\n", stamp)
	case s.LastPush.After(prev.LastPush):
		a.printf("%s ✓ pushed\n", stamp)
	}
}
