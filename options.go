package dash2pdf

import (
	"time"

	"go.uber.org/zap"
)

// Defaults for a run. Dashboards vary in load time, so every wait is an option.
const (
	DefaultReportsDir     = "reports"
	DefaultIdleTimeout    = 60 * time.Second
	DefaultSettleDelay    = 10 * time.Second
	DefaultLoginGrace     = 5 * time.Second
	DefaultElementTimeout = 10 * time.Second
	DefaultViewportWidth  = 1366
	DefaultViewportHeight = 768
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	reportsDir     string
	idleTimeout    time.Duration
	settleDelay    time.Duration
	loginGrace     time.Duration
	elementTimeout time.Duration
	viewport       Viewport
	selectors      Selectors
	prune          PrunePolicy
	htmlSnapshot   bool
	browserBin     string
}

func defaultExporterConfig() exporterConfig {
	return exporterConfig{
		reportsDir:     DefaultReportsDir,
		idleTimeout:    DefaultIdleTimeout,
		settleDelay:    DefaultSettleDelay,
		loginGrace:     DefaultLoginGrace,
		elementTimeout: DefaultElementTimeout,
		viewport:       Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		selectors:      DefaultSelectors(),
		prune:          DefaultPrunePolicy(),
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithReportsDir sets the directory receiving <name>.pdf.
func WithReportsDir(dir string) Option {
	return func(e *Exporter) {
		if dir != "" {
			e.cfg.reportsDir = dir
		}
	}
}

// WithIdleTimeout bounds the wait for the dashboard to reach network idle.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("dash2pdf: WithIdleTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.idleTimeout = d
	}
}

// WithSettleDelay sets the pause between pruning and printing.
// Zero disables the pause.
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("dash2pdf: WithSettleDelay duration must not be negative")
	}
	return func(e *Exporter) {
		e.cfg.settleDelay = d
	}
}

// WithLoginGrace bounds the wait for the post-login navigation.
// Panics if d <= 0.
func WithLoginGrace(d time.Duration) Option {
	if d <= 0 {
		panic("dash2pdf: WithLoginGrace duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.loginGrace = d
	}
}

// WithElementTimeout bounds element lookups (login fields, tab controls).
// Panics if d <= 0.
func WithElementTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("dash2pdf: WithElementTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.elementTimeout = d
	}
}

// WithViewport sets the dashboard authoring viewport.
func WithViewport(vp Viewport) Option {
	return func(e *Exporter) {
		if vp.Width > 0 && vp.Height > 0 {
			e.cfg.viewport = vp
		}
	}
}

// WithSelectors overrides the login and tab selectors. Empty fields keep defaults.
func WithSelectors(s Selectors) Option {
	return func(e *Exporter) {
		if s.Username != "" {
			e.cfg.selectors.Username = s.Username
		}
		if s.Password != "" {
			e.cfg.selectors.Password = s.Password
		}
		if s.LoginButton != "" {
			e.cfg.selectors.LoginButton = s.LoginButton
		}
		if s.TabTitle != "" {
			e.cfg.selectors.TabTitle = s.TabTitle
		}
	}
}

// WithPrunePolicy replaces the default prune policy.
func WithPrunePolicy(p PrunePolicy) Option {
	return func(e *Exporter) {
		e.cfg.prune = p
	}
}

// WithHTMLSnapshot also writes the pruned DOM as <name>.html next to the PDF.
func WithHTMLSnapshot(enabled bool) Option {
	return func(e *Exporter) {
		e.cfg.htmlSnapshot = enabled
	}
}

// WithBrowserBin uses a pre-installed Chrome binary instead of rod's managed one.
func WithBrowserBin(path string) Option {
	return func(e *Exporter) {
		e.cfg.browserBin = path
	}
}

// withLauncher swaps the browser launcher (tests).
func withLauncher(fn launchFunc) Option {
	return func(e *Exporter) {
		e.launch = fn
	}
}
