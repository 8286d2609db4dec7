package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/linqiu0199/xhs-collector/internal/browser"
	"github.com/linqiu0199/xhs-collector/internal/capture"
	"github.com/linqiu0199/xhs-collector/internal/config"
	"github.com/linqiu0199/xhs-collector/internal/scraper"
	"github.com/linqiu0199/xhs-collector/internal/session"
	"github.com/linqiu0199/xhs-collector/internal/sink"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("Starting explore-feed collector...")

	selectors, err := scraper.LoadConfig(cfg.SelectorsPath)
	if err != nil {
		slog.Warn("Failed to load selectors. Using defaults.", "error", err)
		selectors = scraper.DefaultSelectors()
	}

	// The session ends on SIGINT/SIGTERM, or after XHS_RUN_DURATION if set.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.RunDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunDuration)
		defer cancel()
	}

	b, err := browser.New(ctx, cfg, selectors)
	if err != nil {
		slog.Error("Critical error launching browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	sess := session.New()
	table := sink.NewTable()
	extractor := scraper.NewExtractor(selectors, cfg.BaseURL)
	runner := capture.NewRunner(b, extractor, sess, cfg, table)

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("Collection session failed", "error", err)
	}

	if table.Len() == 0 {
		slog.Info("No notes captured, skipping export")
		return
	}

	path, err := sink.NewExporter(cfg.ExportDir, table).Export()
	if err != nil {
		slog.Error("Export failed; captured notes remain in memory only", "error", err)
		os.Exit(1)
	}
	slog.Info("Collection finished", "notes", table.Len(), "export", path)
}
