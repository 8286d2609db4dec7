package capture

import (
	"context"

	"github.com/linqiu0199/xhs-collector/internal/models"
)

// Page abstracts the embedded browser driving the explore feed.
type Page interface {
	// Navigate loads the target page.
	Navigate(ctx context.Context, url string) error
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// HTML returns the page's current rendered markup.
	HTML(ctx context.Context) (string, error)
	// HasContent reports whether at least one note item is rendered.
	HasContent(ctx context.Context) (bool, error)
	// ScrollProbe waits for pending image loads, scrolls to the bottom,
	// settles, and reports the page status.
	ScrollProbe(ctx context.Context) (models.PageStatus, error)
	// InstallWatchers injects the in-page loading flag sampler and the
	// mutation observer that pushes new-content notifications.
	InstallWatchers(ctx context.Context) error
	// LoadingFlag reads the sampled in-page loading flag.
	LoadingFlag(ctx context.Context) (bool, error)
	// OnNewContent registers the handler for pushed new-content signals.
	OnNewContent(fn func())
}

// Sink receives one event per non-empty capture batch.
type Sink interface {
	Publish(ctx context.Context, batch []models.NoteItem) error
}
