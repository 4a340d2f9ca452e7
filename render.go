package dash2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// rendered is the dashboard state handed to the export stage.
type rendered struct {
	dims   Dimensions
	pruned int
}

// renderer prepares the authenticated dashboard tab for printing.
type renderer struct {
	selectors   Selectors
	prune       PrunePolicy
	idleTimeout time.Duration
	logger      *zap.Logger
}

// Render navigates dash to p.TargetURL, measures the content, switches to
// p.Tab unless it is NoTab and prunes chrome. The size is measured after
// network idle and before pruning, so pruning never shrinks the page box.
func (r *renderer) Render(ctx context.Context, dash tab, p Params) (rendered, error) {
	targetURL, tabID := p.TargetURL, p.Tab
	if err := dash.NavigateIdle(ctx, targetURL, r.idleTimeout); err != nil {
		if errors.Is(err, errWaitTimeout) {
			return rendered{}, fmt.Errorf("%w: %s: %v", ErrIdleTimeout, targetURL, err)
		}
		return rendered{}, fmt.Errorf("%w: %s: %v", ErrNavigation, targetURL, err)
	}

	dims, err := dash.ScrollSize(ctx)
	if err != nil {
		return rendered{}, fmt.Errorf("%w: %v", ErrMeasure, err)
	}
	if !dims.Valid() {
		return rendered{}, fmt.Errorf("%w: empty content box %dx%d", ErrMeasure, dims.Width, dims.Height)
	}
	r.logger.Info("dashboard loaded",
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height))

	if p.WantsTab() {
		sel := r.selectors.TabSelector(tabID)
		if err := dash.Click(ctx, sel); err != nil {
			if errors.Is(err, errNoElement) {
				return rendered{}, fmt.Errorf("%w: %q", ErrTabNotFound, tabID)
			}
			return rendered{}, fmt.Errorf("%w: %q: %v", ErrTabClick, tabID, err)
		}
		r.logger.Info("tab activated", zap.String("tab", tabID))
	}

	pruned, err := dash.Remove(ctx, r.prune.Selectors())
	if err != nil {
		return rendered{}, fmt.Errorf("%w: %v", ErrPrune, err)
	}
	r.logger.Debug("chrome pruned", zap.Int("removed", pruned))

	return rendered{dims: dims, pruned: pruned}, nil
}
