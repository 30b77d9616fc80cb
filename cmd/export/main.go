// One-shot CSV export: scrapes a full snapshot and writes the spreadsheet
// without needing redis or the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"scratch_tracker/internal/config"
	service "scratch_tracker/internal/domain/service/games"
	"scratch_tracker/internal/export"
	"scratch_tracker/internal/infrastructure/lottery"
	"scratch_tracker/internal/worker"
	"scratch_tracker/pkg/contextx"
	"scratch_tracker/pkg/logx"
)

func main() {
	output := flag.String("o", "", "output file path (default stdout)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, *output); err != nil {
		log.Error("export failed", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	fetcher := lottery.NewClient(cfg.Scrape.ListingURL, cfg.Scrape.Timeout, cfg.Scrape.LogFieldMaxLen)

	games := service.NewGameService(fetcher, cfg.Scrape.BaseURL, cfg.Scrape.LinkPattern)

	snapshot, err := worker.NewRunner(games, nil).
		WithBatchSize(cfg.Scrape.BatchSize).
		RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("runner.RunOnce: %w", err)
	}

	var w io.Writer = os.Stdout

	if output != "" {
		fh, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("os.Create: %w", err)
		}

		defer fh.Close()

		w = fh
	}

	if err := export.WriteCSV(w, snapshot.Records); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	return nil
}
