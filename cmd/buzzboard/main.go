package main

import (
	"buzzboard/aggregate"
	"buzzboard/classify"
	"buzzboard/internal"
	"buzzboard/observability"
	"buzzboard/render"
	"buzzboard/runtime/workers"
	"buzzboard/transport"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the board lifecycle, and
// centralizes error reporting: a graceful termination signal comes
// back as nil (exit 0), an unrecoverable transport failure as an
// error (exit 1), with all defers executed either way.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Aggregation state, owned here and shared by both loops
	board, err := aggregate.NewBoard(config.KeywordList(), config.BucketWidth, config.RetentionBuckets)
	if err != nil {
		return fmt.Errorf("board setup: %w", err)
	}
	monitor := observability.NewMonitor(log)

	// 3. Collaborators: transport, classifier, rendering sink
	source, err := transport.NewKafkaSource(log, monitor, transport.KafkaConfig{
		Brokers:    config.BrokerList(),
		Topic:      config.Topic,
		GroupID:    config.GroupID,
		FromOldest: config.FromOldest,
		BufferSize: config.BufferSize,
		RateLimit:  config.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("transport setup: %w", err)
	}
	classifier := classify.NewLexicon()
	console := render.NewConsole(os.Stdout, monitor)
	if config.ClearScreen {
		console = console.WithClearScreen()
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Optional snapshot inspector
	if config.DebugPort > 0 {
		server := internal.StartDebugServer(log, config.DebugPort, board.Snapshot, monitor.Latest)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	// 6. Run both loops under supervision
	log.Info("Starting real-time analytics board",
		"topic", config.Topic, "group", config.GroupID,
		"keywords", config.KeywordList(), "cadence", config.RenderInterval)

	sup := workers.NewSupervisor(log)
	sup.Add(
		source,
		workers.NewDispatcherWorker(log, source, classifier, board, monitor),
		workers.NewRenderWorker(log, board, console, config.RenderInterval, monitor),
	)
	if err := sup.Run(ctx); err != nil {
		return fmt.Errorf("board stopped: %w", err)
	}

	log.Info("Graceful shutdown complete")
	return nil
}
