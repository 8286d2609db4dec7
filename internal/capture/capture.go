// Package capture orchestrates the scrape session: it paces scrolling,
// pulls markup snapshots, runs extraction, and hands new-record batches to
// the sinks.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/linqiu0199/xhs-collector/internal/config"
	"github.com/linqiu0199/xhs-collector/internal/pacer"
	"github.com/linqiu0199/xhs-collector/internal/scraper"
	"github.com/linqiu0199/xhs-collector/internal/session"
	"github.com/linqiu0199/xhs-collector/internal/util"
)

// Pushed new-content signals arrive in bursts while the feed hydrates;
// extra capture passes are coalesced to one per this interval. Dedup makes
// the dropped passes harmless.
const newContentMinInterval = time.Second

type Runner struct {
	page      Page
	extractor *scraper.Extractor
	session   *session.Session
	sinks     []Sink
	cfg       *config.Config
	pacer     *pacer.Pacer
	limiter   *rate.Limiter
}

func NewRunner(page Page, extractor *scraper.Extractor, sess *session.Session, cfg *config.Config, sinks ...Sink) *Runner {
	r := &Runner{
		page:      page,
		extractor: extractor,
		session:   sess,
		sinks:     sinks,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Every(newContentMinInterval), 1),
	}
	r.pacer = pacer.New(cfg.ScrollInterval, cfg.LoadingRetryDelay, page.ScrollProbe, func(ctx context.Context) {
		r.CaptureOnce(ctx)
	})
	return r
}

// CaptureOnce takes one markup snapshot, extracts not-yet-seen notes, and
// publishes them to the sinks as a single batch. It returns the number of
// new records; every failure degrades to an empty batch.
func (r *Runner) CaptureOnce(ctx context.Context) int {
	html, err := r.page.HTML(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("Failed to snapshot page markup", "error", err)
		}
		return 0
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		slog.Error("Failed to parse page markup", "error", err)
		return 0
	}

	batch := r.extractor.Extract(doc, r.session.Index)
	if len(batch) == 0 {
		return 0
	}

	for _, sink := range r.sinks {
		if err := sink.Publish(ctx, batch); err != nil {
			slog.Error("Sink rejected capture batch", "error", err, "batch", len(batch))
		}
	}

	slog.Info("Captured new notes", "new", len(batch), "total", r.session.Index.Len())
	return len(batch)
}

// HandleNewContent reacts to a pushed new-content signal with one extra
// capture pass, rate-limited to absorb mutation bursts.
func (r *Runner) HandleNewContent(ctx context.Context) {
	if !r.limiter.Allow() {
		return
	}
	r.CaptureOnce(ctx)
}

// Run drives a full session: load the page, wait for feed content,
// install the in-page watchers, then scroll and capture until ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.page.Navigate(ctx, r.cfg.TargetURL); err != nil {
		return fmt.Errorf("failed to load target page %s: %w", r.cfg.TargetURL, err)
	}
	slog.Info("Page loaded, waiting for feed content", "url", r.cfg.TargetURL)

	if err := r.waitForContent(ctx); err != nil {
		return fmt.Errorf("feed content never appeared: %w", err)
	}
	slog.Info("Feed content detected, starting collection")

	if err := r.page.InstallWatchers(ctx); err != nil {
		return fmt.Errorf("failed to install page watchers: %w", err)
	}
	r.page.OnNewContent(func() {
		r.HandleNewContent(ctx)
	})

	// Capture whatever is already rendered before the first scroll.
	r.CaptureOnce(ctx)

	r.pacer.Start(ctx)
	defer r.pacer.Stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.statusLoop(gCtx)
	})
	return g.Wait()
}

// waitForContent polls for the first rendered note item, reloading the
// page between attempts the way a stuck explore page recovers.
func (r *Runner) waitForContent(ctx context.Context) error {
	return util.RetryWithBackoff(ctx, r.cfg.ContentWaitRetries, 500*time.Millisecond, func(attempt int) error {
		if attempt > 0 {
			slog.Info("No feed content yet, reloading page", "attempt", attempt)
			if err := r.page.Reload(ctx); err != nil {
				return fmt.Errorf("reload failed: %w", err)
			}
		}
		ok, err := r.page.HasContent(ctx)
		if err != nil {
			return fmt.Errorf("content probe failed: %w", err)
		}
		if !ok {
			return fmt.Errorf("no note items rendered")
		}
		return nil
	})
}

func (r *Runner) statusLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.StatusCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			loading, err := r.page.LoadingFlag(ctx)
			if err != nil {
				continue
			}
			if loading {
				slog.Debug("Page is loading more content")
			} else {
				slog.Debug("Collection in progress", "total", r.session.Index.Len())
			}
		}
	}
}
