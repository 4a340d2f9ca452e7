package dash2pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-dash2pdf/internal/fileutil"
)

// Exporter runs the login, render and print pipeline for one dashboard.
// Create with NewExporter and call Export once per dashboard; every call
// launches and tears down its own browser.
type Exporter struct {
	cfg    exporterConfig
	logger *zap.Logger
	launch launchFunc
	now    func() time.Time
	newID  func() string
}

// NewExporter creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithReportsDir, WithIdleTimeout).
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg:    defaultExporterConfig(),
		logger: zap.NewNop(),
		launch: launchRod,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export logs in with creds, renders p.TargetURL and writes
// <reports dir>/<p.OutputName>.pdf. Stages run strictly in order and the
// first failure aborts the run; the browser is released on every path.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, p Params, creds Credentials) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := e.cfg.prune.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	pdfPath, err := fileutil.ReportPath(e.cfg.reportsDir, p.OutputName, "pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	htmlPath, err := fileutil.ReportPath(e.cfg.reportsDir, p.OutputName, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	runID := e.newID()
	log := e.logger.With(zap.String("run_id", runID))
	start := e.now()
	log.Info("export started",
		zap.String("url", p.TargetURL),
		zap.String("output", pdfPath),
		zap.String("tab", p.Tab),
		zap.Object("credentials", creds))

	drv, err := e.launch(ctx, launchOptions{
		bin:            e.cfg.browserBin,
		elementTimeout: e.cfg.elementTimeout,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := drv.Close(); closeErr != nil {
			log.Warn("closing browser", zap.Error(closeErr))
		}
	}()

	auth := &authenticator{
		selectors: e.cfg.selectors,
		grace:     e.cfg.loginGrace,
		logger:    log,
		now:       e.now,
	}
	sess, login, err := auth.Authenticate(ctx, drv, p.LoginURL(), creds)
	if err != nil {
		return nil, err
	}

	dash, err := transferSession(ctx, drv, sess, login, e.cfg.viewport, log)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := dash.Close(); closeErr != nil {
			log.Debug("closing dashboard tab", zap.Error(closeErr))
		}
	}()

	rend := &renderer{
		selectors:   e.cfg.selectors,
		prune:       e.cfg.prune,
		idleTimeout: e.cfg.idleTimeout,
		logger:      log,
	}
	page, err := rend.Render(ctx, dash, p)
	if err != nil {
		return nil, err
	}

	prn := &printer{
		settle:       e.cfg.settleDelay,
		prune:        e.cfg.prune,
		htmlSnapshot: e.cfg.htmlSnapshot,
		logger:       log,
	}
	out, err := prn.Print(ctx, dash, page.dims, pdfPath, htmlPath)
	if err != nil {
		return nil, err
	}

	log.Info("export finished", zap.Duration("elapsed", e.now().Sub(start)))

	return &Result{
		RunID:      runID,
		Path:       out.path,
		HTMLPath:   out.htmlPath,
		Dimensions: page.dims,
		Pruned:     page.pruned,
		Bytes:      out.bytes,
	}, nil
}
