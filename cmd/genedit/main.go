// Package main is the entry point for the genedit engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/genedit/internal/assist"
	"github.com/dshills/genedit/internal/backend"
	"github.com/dshills/genedit/internal/config"
	"github.com/dshills/genedit/internal/event"
	"github.com/dshills/genedit/internal/host"
	"github.com/dshills/genedit/internal/logging"
	"github.com/dshills/genedit/internal/pending"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath, logLevel := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, cleanup, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer cleanup()

	provider, err := backend.New(cfg.AI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to configure provider: %v\n", err)
		return 1
	}
	log.Info("starting genedit %s (provider %s, model %s)", version, provider.Name(), cfg.AI.Model)

	// Stdout carries the protocol; everything else stays off it.
	conn := host.NewConn(os.Stdin, os.Stdout, nil)

	bus := event.NewBus()
	tracker := pending.NewTracker(pending.WithCountListener(func(count int) {
		bus.Publish(event.New(assist.TopicActiveChanged, count, "tracker"))
	}))

	coord := assist.NewCoordinator(tracker, provider, host.NewEditWriter(conn), bus,
		assist.WithGenerationDefaults(cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Temperature),
		assist.WithLogger(log),
	)

	// The host sees every lifecycle event as an "event" notification.
	bus.SubscribeFunc("assist.*", func(ev event.Event) {
		params := map[string]any{"topic": string(ev.Topic), "payload": ev.Payload}
		if err := conn.Notify("event", params); err != nil {
			log.Debug("event forward: %v", err)
		}
	})

	srv := host.NewServer(conn, host.NewStore(), host.NewEngine(coord), host.WithServerLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		log.Info("shutting down")
		cancel()
		conn.Close()
	}()

	if err := srv.Run(ctx); err != nil && err != context.Canceled && err != host.ErrShutdown {
		log.Error("server: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildLogger creates the process logger from config. The returned
// cleanup closes the log file when one was opened.
func buildLogger(cfg config.LoggingConfig) (*logging.Logger, func(), error) {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Level)

	cleanup := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		lc.Output = f
		cleanup = func() { f.Close() }
	}

	return logging.New(lc), cleanup, nil
}

func parseFlags() (configPath, logLevel string) {
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "genedit - editor code generation engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: genedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "The engine speaks JSON-RPC 2.0 over stdin/stdout; a host editor\n")
		fmt.Fprintf(os.Stderr, "drives it with document and generation messages.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("genedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return configPath, logLevel
}
