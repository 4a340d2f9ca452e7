package dash2pdf

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// transferSession opens the dashboard tab, installs sess into it and only
// then closes the login tab. Nothing navigates the new tab before the
// cookies are in place.
func transferSession(ctx context.Context, drv driver, sess Session, login tab, vp Viewport, logger *zap.Logger) (tab, error) {
	dash, err := drv.NewTab(ctx, &vp)
	if err != nil {
		_ = login.Close()
		return nil, err
	}

	if err := dash.SetCookies(ctx, sess.Cookies); err != nil {
		_ = dash.Close()
		_ = login.Close()
		return nil, fmt.Errorf("%w: %v", ErrCookieTransfer, err)
	}

	if err := login.Close(); err != nil {
		// The session already lives in the dashboard tab; a stuck login tab
		// dies with the browser.
		logger.Warn("closing login tab", zap.Error(err))
	}

	logger.Debug("session transferred",
		zap.Int("cookies", len(sess.Cookies)),
		zap.Int("viewport_width", vp.Width),
		zap.Int("viewport_height", vp.Height))
	return dash, nil
}
