package dash2pdf

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-dash2pdf/internal/fileutil"
)

// exported is what the export stage wrote.
type exported struct {
	path     string
	htmlPath string
	bytes    int
}

// printer writes the pruned dashboard tab to disk.
type printer struct {
	settle       time.Duration
	prune        PrunePolicy
	htmlSnapshot bool
	logger       *zap.Logger
}

// Print waits for the page to settle, prints it at dims and writes it to
// pdfPath. Nothing is written to pdfPath unless the PDF rendered and parsed.
func (x *printer) Print(ctx context.Context, dash tab, dims Dimensions, pdfPath, htmlPath string) (exported, error) {
	if err := settle(ctx, x.settle); err != nil {
		return exported{}, fmt.Errorf("%w: waiting for page to settle: %v", ErrPDFGeneration, err)
	}

	if x.htmlSnapshot || len(x.prune.Rules) > 0 {
		x.checkSnapshot(ctx, dash, htmlPath)
	}

	data, err := dash.PDF(ctx, dims)
	if err != nil {
		return exported{}, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	info, err := inspectPDF(data)
	if err != nil {
		return exported{}, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	if !info.Matches(dims) {
		// preferCSSPageSize lets an @page rule win over the measured size.
		x.logger.Warn("page size differs from measured content",
			zap.Float64("page_width_pt", info.Width),
			zap.Float64("page_height_pt", info.Height),
			zap.Int("content_width_px", dims.Width),
			zap.Int("content_height_px", dims.Height))
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := fileutil.WriteFileAtomic(pdfPath, data, 0o644); err != nil {
		return exported{}, fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	x.logger.Info("pdf written",
		zap.String("path", pdfPath),
		zap.Int("pages", info.Pages),
		zap.Int("bytes", len(data)))

	out := exported{path: pdfPath, bytes: len(data)}
	if x.htmlSnapshot {
		out.htmlPath = htmlPath
	}
	return out, nil
}

// checkSnapshot serializes the pruned DOM, warns about chrome that survived
// pruning and, when enabled, writes the snapshot to htmlPath. Failures here
// never fail the export.
func (x *printer) checkSnapshot(ctx context.Context, dash tab, htmlPath string) {
	html, err := dash.HTML(ctx)
	if err != nil {
		x.logger.Warn("reading DOM snapshot", zap.Error(err))
		return
	}

	left, err := x.prune.remainingInHTML(html)
	if err != nil {
		x.logger.Warn("checking pruned DOM", zap.Error(err))
	} else if len(left) > 0 {
		x.logger.Warn("chrome elements remain after pruning", zap.Any("remaining", left))
	}

	if !x.htmlSnapshot {
		return
	}
	// #nosec G306 -- snapshot is a debugging artifact next to the PDF
	if err := fileutil.WriteFileAtomic(htmlPath, []byte(html), 0o644); err != nil {
		x.logger.Warn("writing DOM snapshot", zap.String("path", htmlPath), zap.Error(err))
	}
}

// settle blocks for d or until ctx is done.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
