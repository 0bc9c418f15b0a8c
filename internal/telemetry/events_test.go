package telemetry

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asteroid-belt/trickplanner/pkg/version"
)

func TestEventConstants(t *testing.T) {
	assert.Equal(t, "app_started", EventAppStarted)
	assert.Equal(t, "cli_command_executed", EventCLICommandExecuted)
	assert.Equal(t, "cli_error_occurred", EventCLIErrorOccurred)
	assert.Equal(t, "sync_pushed", EventSyncPushed)
	assert.Equal(t, "sync_pulled", EventSyncPulled)
	assert.Equal(t, "sync_failed", EventSyncFailed)
	assert.Equal(t, "backup_exported", EventBackupExported)
	assert.Equal(t, "backup_imported", EventBackupImported)
}

func TestBaseProperties(t *testing.T) {
	props := baseProperties()

	assert.Equal(t, runtime.GOOS, props["os"])
	assert.Equal(t, runtime.GOARCH, props["arch"])
	assert.Equal(t, version.Short(), props["version"])
}
