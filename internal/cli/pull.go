package cli

import (
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:     "pull",
	Aliases: []string{"p"},
	Short:   "Replace local data with the server copy (alias: p)",
	Long: `Fetch the full snapshot from the sync server and replace local data
with it. Waits for an in-flight push to finish first.

Examples:
  trickplanner pull`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local data to the server now",
	Long: `Send the full local snapshot to the sync server without waiting for
the usual quiet period after a change.`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

func runPull(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "pull", func(a *app) error {
		return a.pull()
	})
}

func runPush(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "push", func(a *app) error {
		return a.push()
	})
}

func (a *app) pull() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	a.println("🔄 Pulling from " + a.cfg.Server.URL + "...")
	if err := a.agent.Pull(a.ctx); err != nil {
		return err
	}

	snap := a.store.Snapshot()
	a.printf("   ✓ %d tricks, %d categories, %d templates, %d challenges, %d training days\n",
		len(snap.Tricks), len(snap.Categories), len(snap.Templates), len(snap.Challenges), len(snap.TrainingPlans))
	return nil
}

func (a *app) push() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.agent.Push(a.ctx); err != nil {
		return err
	}
	a.println(successStyle.Render("✓ Pushed to " + a.cfg.Server.URL))
	return nil
}
