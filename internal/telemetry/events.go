package telemetry

import (
	"runtime"

	"github.com/asteroid-belt/trickplanner/pkg/version"
)

// Event names - CLI
const (
	EventAppStarted         = "app_started"
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
)

// Event names - Sync
const (
	EventSyncPushed = "sync_pushed"
	EventSyncPulled = "sync_pulled"
	EventSyncFailed = "sync_failed"
)

// Event names - Backup
const (
	EventBackupExported = "backup_exported"
	EventBackupImported = "backup_imported"
)

// baseProperties returns common properties for all events.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
		"version": version.Short(),
	}
}

// TrackAppStarted tracks a CLI invocation.
func (c *posthogClient) TrackAppStarted(command string, loggedIn bool) {
	props := baseProperties()
	props["command_name"] = command
	props["logged_in"] = loggedIn
	c.Track(EventAppStarted, props)
}

// TrackCommandExecuted tracks CLI command execution.
func (c *posthogClient) TrackCommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["execution_duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

// TrackCLIError tracks CLI errors.
func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

// TrackSyncPushed tracks a successful push.
func (c *posthogClient) TrackSyncPushed(durationMs int64) {
	props := baseProperties()
	props["duration_ms"] = durationMs
	c.Track(EventSyncPushed, props)
}

// TrackSyncPulled tracks a successful pull.
func (c *posthogClient) TrackSyncPulled(durationMs int64) {
	props := baseProperties()
	props["duration_ms"] = durationMs
	c.Track(EventSyncPulled, props)
}

// TrackSyncFailed tracks a failed push or pull.
func (c *posthogClient) TrackSyncFailed(op, errorType string) {
	props := baseProperties()
	props["op"] = op
	props["error_type"] = errorType
	c.Track(EventSyncFailed, props)
}

// TrackBackupExported tracks an export.
func (c *posthogClient) TrackBackupExported(trickCount int, toClipboard bool) {
	props := baseProperties()
	props["trick_count"] = trickCount
	props["to_clipboard"] = toClipboard
	c.Track(EventBackupExported, props)
}

// TrackBackupImported tracks an import.
func (c *posthogClient) TrackBackupImported(trickCount int) {
	props := baseProperties()
	props["trick_count"] = trickCount
	c.Track(EventBackupImported, props)
}

// --- noopClient implementations (no-ops) ---

func (c *noopClient) TrackAppStarted(command string, loggedIn bool)                           {}
func (c *noopClient) TrackCommandExecuted(commandName string, hasFlags bool, durationMs int64) {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                             {}
func (c *noopClient) TrackSyncPushed(durationMs int64)                                        {}
func (c *noopClient) TrackSyncPulled(durationMs int64)                                        {}
func (c *noopClient) TrackSyncFailed(op, errorType string)                                    {}
func (c *noopClient) TrackBackupExported(trickCount int, toClipboard bool)                    {}
func (c *noopClient) TrackBackupImported(trickCount int)                                      {}
