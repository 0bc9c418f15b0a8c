package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/cli/prompts"
	"github.com/asteroid-belt/trickplanner/internal/config"
	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a backup of all your data",
	Long: `Write a backup of all your data as JSON.

Without a file the backup goes to the backups directory under a
timestamped name. Use "-" for stdout or --clipboard to copy it.

Examples:
  trickplanner export
  trickplanner export ~/tricks.json
  trickplanner export - | jq .tricks
  trickplanner export --clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a backup",
	Long: `Replace all data with a backup written by 'trickplanner export'.

Everything currently stored is replaced, and the result is pushed when
you are signed in. Use "-" to read the backup from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportClipboard bool
	importYes       bool
)

func init() {
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the backup to the clipboard")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "export", func(a *app) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return a.export(target, exportClipboard)
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "import", func(a *app) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		return a.importBackup(data, importYes)
	})
}

// export writes the backup to target, to stdout when target is "-", or
// to the clipboard.
func (a *app) export(target string, toClipboard bool) error {
	data, err := a.store.Export()
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	snap := a.store.Snapshot()
	tricks := len(snap.Tricks)

	switch {
	case toClipboard:
		if err := clipboard.WriteAll(string(data)); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		a.println(successStyle.Render("✓ Backup copied to clipboard"))
	case target == "-":
		a.println(string(data))
	default:
		if target == "" {
			target = defaultBackupPath(a.cfg, time.Now())
		}
		if err := writeBackup(target, data); err != nil {
			return err
		}
		a.printf("✓ Backup written to %s\n", target)
		if fp, err := snapshotFingerprint(snap); err == nil {
			a.printf("  %s\n", mutedStyle.Render("fingerprint "+fp))
		}
	}

	telemetryClient.TrackBackupExported(tricks, toClipboard)
	return nil
}

func (a *app) importBackup(data []byte, yes bool) error {
	snap, err := planner.DecodeSnapshot(data)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := prompts.RunConfirm("Replace all data with this backup?", describeSnapshot(snap))
		if err != nil {
			return err
		}
		if !ok {
			a.println("Import cancelled.")
			return nil
		}
	}

	imported, err := a.store.Import(data)
	if err != nil {
		return err
	}
	a.printf("✓ Imported %s\n", describeSnapshot(imported))
	if !a.session.LoggedIn() {
		a.println(mutedStyle.Render("  Stored locally. Sign in to sync."))
	}

	telemetryClient.TrackBackupImported(len(imported.Tricks))
	return nil
}

func describeSnapshot(snap models.Snapshot) string {
	return fmt.Sprintf("%s, %s, %s, %s",
		pluralize(len(snap.Tricks), "trick"),
		pluralize(len(snap.Templates), "template"),
		pluralize(len(snap.Challenges), "challenge"),
		pluralize(len(snap.TrainingPlans), "training day"))
}

func defaultBackupPath(cfg *config.Config, now time.Time) string {
	name := fmt.Sprintf("trickplanner-%s.json", now.Format("20060102-150405"))
	return filepath.Join(config.GetPaths(cfg).Backups, name)
}

// writeBackup replaces path atomically through a temp file.
func writeBackup(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
