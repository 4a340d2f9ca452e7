package dash2pdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// authenticator logs into the host application and captures its session.
type authenticator struct {
	selectors Selectors
	grace     time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// Authenticate opens a login tab, submits creds and returns the captured
// session together with the still-open login tab. The caller closes the tab
// once the session has been installed elsewhere. No retry: the same
// credentials would fail the same way.
func (a *authenticator) Authenticate(ctx context.Context, drv driver, loginURL string, creds Credentials) (Session, tab, error) {
	login, err := drv.NewTab(ctx, nil)
	if err != nil {
		return Session{}, nil, err
	}

	sess, err := a.login(ctx, login, loginURL, creds)
	if err != nil {
		_ = login.Close()
		return Session{}, nil, err
	}
	return sess, login, nil
}

func (a *authenticator) login(ctx context.Context, login tab, loginURL string, creds Credentials) (Session, error) {
	if err := login.Navigate(ctx, loginURL); err != nil {
		return Session{}, fmt.Errorf("%w: %s: %v", ErrLoginPage, loginURL, err)
	}

	if err := login.Fill(ctx, a.selectors.Username, creds.Username); err != nil {
		return Session{}, fmt.Errorf("%w: username field: %v", ErrLoginForm, err)
	}
	if err := login.Fill(ctx, a.selectors.Password, creds.Password); err != nil {
		return Session{}, fmt.Errorf("%w: password field: %v", ErrLoginForm, err)
	}

	// The session cookie may arrive with the click response or after a
	// redirect, so wait for a navigation but only up to the grace period.
	navigated, err := login.ClickAndWait(ctx, a.selectors.LoginButton, a.grace)
	if err != nil {
		return Session{}, fmt.Errorf("%w: login button: %v", ErrLoginForm, err)
	}
	if !navigated {
		a.logger.Warn("no navigation after login click, reading cookies anyway",
			zap.Duration("grace", a.grace))
	}

	cookies, err := login.Cookies(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("%w: reading cookies: %v", ErrLoginForm, err)
	}

	current, err := login.URL(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("%w: reading location: %v", ErrLoginForm, err)
	}
	sess := Session{
		LoginURL:   loginURL,
		Cookies:    cookies,
		CapturedAt: a.now(),
	}
	if err := confirmLogin(current, sess); err != nil {
		return Session{}, err
	}

	a.logger.Info("authenticated",
		zap.String("user", creds.Username),
		zap.Int("cookies", len(cookies)))

	return sess, nil
}

// errStillOnLogin reports a login form that re-rendered instead of redirecting.
var errStillOnLogin = errors.New("still on login page")

// confirmLogin treats an empty session, or a tab still showing the login
// page, as rejected credentials.
func confirmLogin(currentURL string, sess Session) error {
	if sess.Empty() {
		return fmt.Errorf("%w: no session cookie issued", ErrAuthRejected)
	}
	if samePath(sess.LoginURL, currentURL) {
		return fmt.Errorf("%w: %w", ErrAuthRejected, errStillOnLogin)
	}
	return nil
}

// samePath compares two URLs by host and path, ignoring query, fragment
// and trailing slashes.
func samePath(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return strings.EqualFold(ua.Host, ub.Host) &&
		strings.TrimRight(ua.Path, "/") == strings.TrimRight(ub.Path, "/")
}
