package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/marketplace-sim/internal/config"
	"github.com/nikolayk812/marketplace-sim/internal/report"
	"github.com/nikolayk812/marketplace-sim/internal/scenario"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "path to a scenario JSON file")
	flag.DurationVar(&cfg.RunTimeout, "timeout", cfg.RunTimeout, "abort the run after this long")
	flag.IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "override queue_size_per_producer when positive")
	flag.Parse()

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("marketplace simulation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	sc, err := scenario.LoadFile(cfg.ScenarioPath)
	if err != nil {
		return fmt.Errorf("scenario.LoadFile: %w", err)
	}
	if cfg.QueueSize > 0 {
		sc.QueueSize = cfg.QueueSize
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	runner := scenario.NewRunner(
		scenario.WithLogger(logger),
		scenario.WithReporter(report.NewPrinter(os.Stdout)),
	)

	result, err := runner.Run(ctx, sc)
	if err != nil {
		return fmt.Errorf("runner.Run: %w", err)
	}

	logger.Info("summary",
		slog.String("scenario", cfg.ScenarioPath),
		slog.Int("orders", len(result.Receipts)),
		slog.Int("sold", result.Stats.Sold),
		slog.Int("left_in_pool", result.Stats.Pooled),
		slog.Duration("elapsed", result.Elapsed),
	)

	return nil
}
