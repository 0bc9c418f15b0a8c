// Package cli provides the command-line interface for TrickPlanner.
package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/planner"
	"github.com/asteroid-belt/trickplanner/internal/remote"
	"github.com/asteroid-belt/trickplanner/internal/session"
	"github.com/asteroid-belt/trickplanner/internal/telemetry"
	"github.com/asteroid-belt/trickplanner/pkg/version"
)

var telemetryClient = telemetry.New(nil, false)

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "trickplanner",
	Short: "Plan skate sessions, roll random combos, track training",
	Long: `Plan skate sessions, roll random combos, track training.

TrickPlanner keeps your trick list, combo challenges, training templates
and daily training plans on this machine. Sign in to keep them in sync
with a TrickPlanner server; every change is pushed shortly after you make it.

Configuration comes from TRICKPLANNER_* environment variables, for example:
  TRICKPLANNER_HOME        data directory
  TRICKPLANNER_SERVER_URL  sync server
  TRICKPLANNER_STORAGE     sqlite (default) or file

Telemetry:
  Telemetry is off unless TRICKPLANNER_TELEMETRY_ENABLED=true. It is
  anonymous and never includes trick names or account details.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		durationMs := time.Since(commandStartTime).Milliseconds()
		hasFlags := cmd.Flags().NFlag() > 0
		telemetryClient.TrackCommandExecuted(cmd.CommandPath(), hasFlags, durationMs)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(trickCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(comboCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc != nil {
		telemetryClient = tc
	}

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	telemetryClient.TrackCLIError(cmdName, classifyError(err))
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	var remoteErr *remote.Error
	var decodeErr *planner.DecodeError
	switch {
	case errors.Is(err, session.ErrNotLoggedIn), errors.Is(err, remote.ErrNotAuthenticated):
		return "auth_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &remoteErr):
		switch remoteErr.StatusCode {
		case 0:
			return "network_error"
		case http.StatusUnauthorized, http.StatusForbidden:
			return "auth_error"
		}
		return "server_error"
	case isAny(err, notFoundErrors...):
		return "not_found_error"
	case isAny(err, validationErrors...):
		return "validation_error"
	}

	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	default:
		return "unknown_error"
	}
}

var notFoundErrors = []error{
	planner.ErrTrickNotFound,
	planner.ErrChallengeNotFound,
	planner.ErrTemplateNotFound,
	planner.ErrTrainingItemNotFound,
	planner.ErrPlanNotFound,
	planner.ErrCategoryNotFound,
}

var validationErrors = []error{
	planner.ErrEmptyName,
	planner.ErrCategoryExists,
	planner.ErrInvalidDifficulty,
	planner.ErrInvalidStatus,
	errAmbiguous,
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
