// Package pacer implements the auto-scroll state machine. A pacer is either
// idle or active; while active a single run goroutine alternates between
// regular scroll probes and loading-retry probes, so at most one probe is
// outstanding at any time.
package pacer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/linqiu0199/xhs-collector/internal/models"
)

// ProbeFunc asks the page to finish pending image loads, scroll to the
// bottom, settle, and report its status.
type ProbeFunc func(ctx context.Context) (models.PageStatus, error)

// CaptureFunc is invoked after every probe, successful or not, so content
// already rendered is never missed.
type CaptureFunc func(ctx context.Context)

type Pacer struct {
	interval   time.Duration
	retryDelay time.Duration
	probe      ProbeFunc
	onCapture  CaptureFunc

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
	done   chan struct{}
}

func New(interval, retryDelay time.Duration, probe ProbeFunc, onCapture CaptureFunc) *Pacer {
	return &Pacer{
		interval:   interval,
		retryDelay: retryDelay,
		probe:      probe,
		onCapture:  onCapture,
	}
}

// Start transitions the pacer from idle to active. Starting an already
// active pacer is a no-op.
func (p *Pacer) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return
	}
	p.active = true

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(runCtx, p.done)
}

// Stop transitions the pacer back to idle and waits for the run loop to
// drain, so no probe or capture fires after Stop returns. Stopping an idle
// pacer is a no-op.
func (p *Pacer) Stop() {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// Active reports whether the pacer is in the active state.
func (p *Pacer) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Pacer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Armed after a probe reports loading=true: one extra capture pass
	// absorbs content still streaming in after the scroll. The chain is
	// deliberately uncapped; a loading indicator that never clears keeps
	// the pacer probing at retryDelay cadence.
	var retry <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-retry:
			retry = nil
		}

		status, err := p.probe(ctx)

		// The capture callback fires unconditionally, even on a degenerate
		// report, so partially rendered content already present is caught.
		p.onCapture(ctx)

		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("Scroll probe failed", "error", err)
			}
			continue
		}

		if status.Loading && retry == nil {
			retry = time.After(p.retryDelay)
		}
	}
}
