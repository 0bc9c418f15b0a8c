// TrickPlanner - skateboard trick planning with background sync
//
// Keeps a trick list, random combo challenges, training templates and
// daily training plans on this machine and syncs them with a
// TrickPlanner server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/trickplanner/internal/cli"
	"github.com/asteroid-belt/trickplanner/internal/config"
	"github.com/asteroid-belt/trickplanner/internal/db"
	"github.com/asteroid-belt/trickplanner/internal/log"
	"github.com/asteroid-belt/trickplanner/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "trickplanner:", err)
		os.Exit(1)
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs); err != nil {
		fmt.Fprintln(os.Stderr, "trickplanner: init log:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Close()
	}()

	// Open database for the persistent tracking ID
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		fmt.Fprintln(os.Stderr, "trickplanner:", err)
		os.Exit(1)
	}
	defer func() {
		_ = database.Close()
	}()

	telemetryClient := telemetry.New(database, cfg.Telemetry.Enabled)
	defer telemetryClient.Close()

	if err := cli.Execute(ctx, telemetryClient); err != nil {
		os.Exit(1)
	}
}
