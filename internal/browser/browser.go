// Package browser drives the embedded Chromium instance behind the capture
// loop's Page interface: markup snapshots, scroll probes, and the in-page
// watchers that push new-content signals back to Go.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/linqiu0199/xhs-collector/internal/config"
	"github.com/linqiu0199/xhs-collector/internal/models"
	"github.com/linqiu0199/xhs-collector/internal/scraper"
)

// newContentBinding is the page-exposed function name the mutation observer
// calls to signal new feed content.
const newContentBinding = "__xhsNotifyNewContent"

type Browser struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	selectors   scraper.SelectorConfig
	cfg         *config.Config
}

// New launches a Chromium instance with the configured user agent and
// returns a driver bound to a fresh tab. The tab's lifetime is tied to
// parent; Close must be called to tear the process down.
func New(parent context.Context, cfg *config.Config, selectors scraper.SelectorConfig) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser process up front so launch failures surface here
	// instead of on the first navigation.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Browser{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		selectors:   selectors,
		cfg:         cfg,
	}, nil
}

func (b *Browser) Close() {
	b.cancelTab()
	b.cancelAlloc()
}

// run executes actions on the tab. The caller's ctx gates entry; the
// actions themselves are bound to the tab context, which is a child of the
// parent passed to New, so cancellation still reaches in-flight CDP calls.
func (b *Browser) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(b.ctx, actions...)
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *Browser) Reload(ctx context.Context) error {
	return b.run(ctx, chromedp.Reload())
}

// HTML returns the page's full current rendered markup.
func (b *Browser) HTML(ctx context.Context) (string, error) {
	var html string
	if err := b.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to snapshot markup: %w", err)
	}
	return html, nil
}

// HasContent reports whether at least one note item is rendered.
func (b *Browser) HasContent(ctx context.Context) (bool, error) {
	script := fmt.Sprintf("!!document.querySelector('%s')", b.selectors.FeedList.Container.Item)
	var ok bool
	if err := b.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return false, fmt.Errorf("content probe failed: %w", err)
	}
	return ok, nil
}

// ScrollProbe waits for every currently-present image to load or error,
// scrolls to the bottom, lets the page settle, and reports its status.
func (b *Browser) ScrollProbe(ctx context.Context) (models.PageStatus, error) {
	script := fmt.Sprintf(scrollProbeJS,
		b.selectors.FeedList.Container.Item,
		b.selectors.Page.LoadingIndicator,
		b.cfg.SettleDelay.Milliseconds(),
	)

	var status models.PageStatus
	err := b.run(ctx, chromedp.Evaluate(script, &status,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}))
	if err != nil {
		return models.PageStatus{}, fmt.Errorf("scroll probe failed: %w", err)
	}
	return status, nil
}

// InstallWatchers exposes the new-content binding and injects the in-page
// loading sampler plus the mutation observer. Idempotent on the page side.
func (b *Browser) InstallWatchers(ctx context.Context) error {
	script := fmt.Sprintf(watcherJS,
		b.selectors.Page.LoadingIndicator,
		newContentBinding,
		newContentBinding,
	)

	var installed bool
	err := b.run(ctx,
		runtime.AddBinding(newContentBinding),
		chromedp.Evaluate(script, &installed),
	)
	if err != nil {
		return fmt.Errorf("failed to install page watchers: %w", err)
	}
	return nil
}

// LoadingFlag reads the flag maintained by the injected sampler.
func (b *Browser) LoadingFlag(ctx context.Context) (bool, error) {
	var loading bool
	if err := b.run(ctx, chromedp.Evaluate("window.__xhsLoading === true", &loading)); err != nil {
		return false, err
	}
	return loading, nil
}

// OnNewContent registers fn for the page's pushed new-content signal. The
// handler runs on its own goroutine so the CDP event loop never blocks.
func (b *Browser) OnNewContent(fn func()) {
	chromedp.ListenTarget(b.ctx, func(ev interface{}) {
		if e, ok := ev.(*runtime.EventBindingCalled); ok && e.Name == newContentBinding {
			go fn()
		}
	})
}
