package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"profiler-viz/internal"
	"profiler-viz/projection"
	"profiler-viz/repositories"
	"profiler-viz/runtime/workers"
	"profiler-viz/sink"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and returns once the dashboard stopped,
// so deferred cleanups always execute before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	repository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	defer func() { _ = repository.Close() }()

	// 3. Read models and click consumers
	timeline := projection.NewTimeline()
	selection := projection.NewSelection()
	clicks := sink.NewClickLog(log, config.ClickHistorySize)
	fanout := workers.NewEventFanout(log, config.EventBufferSize, config.SinkTimeout).
		Add(selection, clicks)

	// 4. Dashboard
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	dashboard := internal.NewDashboard(log, address, repository, timeline, selection, fanout)
	if err = dashboard.Warm(); err != nil {
		return fmt.Errorf("loading stored profiles failed: %w", err)
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervise until a signal arrives
	workers.NewSupervisor(log).Add(fanout, dashboard).Run(ctx)
	log.Info("Program stopped cleanly")
	return nil
}
