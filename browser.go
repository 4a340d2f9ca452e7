package dash2pdf

import (
	"context"
	"errors"
	"time"
)

// driver owns one headless browser process for the duration of a run.
type driver interface {
	// NewTab opens a page in a fresh isolated context (own cookie jar and DOM).
	// A nil viewport keeps the browser window size.
	NewTab(ctx context.Context, vp *Viewport) (tab, error)
	// Close terminates the browser process. Safe to call more than once.
	Close() error
}

// tab abstracts one page context to enable testing without a browser.
type tab interface {
	Navigate(ctx context.Context, url string) error
	NavigateIdle(ctx context.Context, url string, timeout time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	ClickAndWait(ctx context.Context, selector string, grace time.Duration) (navigated bool, err error)
	URL(ctx context.Context) (string, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	SetCookies(ctx context.Context, cookies []Cookie) error
	ScrollSize(ctx context.Context) (Dimensions, error)
	Remove(ctx context.Context, selectors []string) (int, error)
	HTML(ctx context.Context) (string, error)
	PDF(ctx context.Context, size Dimensions) ([]byte, error)
	Close() error
}

// launchFunc starts a browser. Replaced in tests by a recording fake.
type launchFunc func(ctx context.Context, opts launchOptions) (driver, error)

// launchOptions holds browser process settings.
type launchOptions struct {
	bin            string        // Custom Chrome binary, empty = rod managed
	elementTimeout time.Duration // Upper bound for element lookups
}

// Driver-level failures the stages translate into sentinel errors.
var (
	errNoElement   = errors.New("element not found")
	errWaitTimeout = errors.New("wait timed out")
)

// Compile-time interface checks
var (
	_ driver     = (*rodDriver)(nil)
	_ tab        = (*rodTab)(nil)
	_ launchFunc = launchRod
)
