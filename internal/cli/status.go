package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/config"
	"github.com/asteroid-belt/trickplanner/internal/hash"
	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account, storage and sync state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "status", func(a *app) error {
		return a.status()
	})
}

func (a *app) status() error {
	paths := config.GetPaths(a.cfg)
	snap := a.store.Snapshot()
	st := a.agent.Status()

	a.println(titleStyle.Render("TrickPlanner"))
	if a.session.LoggedIn() {
		a.printf("  Account:   %s\n", a.session.Email())
	} else {
		a.printf("  Account:   %s\n", mutedStyle.Render("signed out"))
	}
	a.printf("  Server:    %s\n", a.cfg.Server.URL)

	storage := paths.Database
	if a.cfg.Storage.Backend == config.StorageFile {
		storage = paths.Data
	}
	a.printf("  Storage:   %s (%s)\n", a.cfg.Storage.Backend, storage)
	if a.cfg.Storage.Backend == config.StorageSQLite {
		if sizes, err := a.db.BlobSizes(); err == nil {
			total := 0
			for _, n := range sizes {
				total += n
			}
			a.printf("  Stored:    %d bytes in %d collections\n", total, len(sizes))
		}
	}
	a.printf("  Last push: %s\n", formatSyncTime(st.LastPush))
	a.printf("  Last pull: %s\n", formatSyncTime(st.LastPull))

	a.println()
	a.println(headerStyle.Render("Data"))
	counts := snap.Counts()
	for _, key := range []string{"tricks", "categories", "templates", "challenges", "trainingPlans"} {
		a.printf("  %-14s %d\n", key, counts[key])
	}
	if fp, err := snapshotFingerprint(snap); err == nil {
		a.printf("  %-14s %s\n", "fingerprint", fp)
	}

	done, target := a.store.TrainingCompletion(a.store.Today())
	if target > 0 {
		a.printf("\n  Today's training: %s\n", progressBar(done, target, 20))
	}
	if len(snap.Challenges) > 0 {
		a.printf("  Challenge success: %.0f%%\n", a.store.SuccessRate()*100)
	}
	return nil
}

// snapshotFingerprint identifies the data independent of formatting.
// Two machines holding the same data show the same fingerprint.
func snapshotFingerprint(snap models.Snapshot) (string, error) {
	data, err := planner.EncodeSnapshot(snap)
	if err != nil {
		return "", err
	}
	return hash.Fingerprint(data), nil
}

func formatSyncTime(t time.Time) string {
	if t.IsZero() {
		return mutedStyle.Render("never")
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
