package dash2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-dash2pdf/internal/process"
)

// cssPixelsPerInch converts measured CSS pixels to PDF paper inches.
const cssPixelsPerInch = 96.0

// Scripts evaluated in the dashboard page.
const (
	scrollSizeJS = `() => ({ width: document.body.scrollWidth, height: document.body.scrollHeight })`

	removeAllJS = `(selectors) => {
	let removed = 0;
	for (const sel of selectors) {
		for (const el of document.querySelectorAll(sel)) {
			if (el.parentNode) {
				el.parentNode.removeChild(el);
				removed++;
			}
		}
	}
	return removed;
}`
)

// rodDriver implements driver using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodDriver struct {
	launcher       *launcher.Launcher
	browser        *rod.Browser
	elementTimeout time.Duration
}

// launchRod starts a headless, maximized, unsandboxed Chromium and connects to it.
func launchRod(ctx context.Context, opts launchOptions) (driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true).
		Set("start-maximized")

	// Use pre-installed browser if specified (Docker/containerized environments)
	if opts.bin != "" {
		l = l.Bin(opts.bin)
	}

	u, err := l.Launch()
	if err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	// NoDefaultDevice keeps the maximized window instead of an emulated device.
	browser := rod.New().Context(ctx).ControlURL(u).NoDefaultDevice()
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	return &rodDriver{
		launcher:       l,
		browser:        browser,
		elementTimeout: opts.elementTimeout,
	}, nil
}

// NewTab creates a page inside a new incognito browser context.
func (d *rodDriver) NewTab(ctx context.Context, vp *Viewport) (tab, error) {
	if d.browser == nil {
		return nil, fmt.Errorf("%w: browser closed", ErrPageCreate)
	}

	incognito, err := d.browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = disposeContext(incognito)
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if vp != nil {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             vp.Width,
			Height:            vp.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			_ = page.Close()
			_ = disposeContext(incognito)
			return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
		}
	}

	return &rodTab{
		context:        incognito,
		page:           page,
		elementTimeout: d.elementTimeout,
	}, nil
}

// Close releases browser resources and reaps the process group.
func (d *rodDriver) Close() error {
	var err error
	if d.browser != nil {
		err = d.browser.Close()
		d.browser = nil
	}
	if d.launcher != nil {
		if pid := d.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		d.launcher.Kill()
		d.launcher.Cleanup()
		d.launcher = nil
	}
	return err
}

// disposeContext drops an incognito context and its cookie jar.
func disposeContext(b *rod.Browser) error {
	return proto.TargetDisposeBrowserContext{BrowserContextID: b.BrowserContextID}.Call(b)
}

// rodTab implements tab on one rod page.
type rodTab struct {
	context        *rod.Browser
	page           *rod.Page
	elementTimeout time.Duration
}

// Navigate loads url and waits for the load event.
func (t *rodTab) Navigate(ctx context.Context, url string) error {
	p := t.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// NavigateIdle loads url and waits for Chrome's networkAlmostIdle lifecycle
// event (at most two requests in flight for 500ms).
func (t *rodTab) NavigateIdle(ctx context.Context, url string, timeout time.Duration) error {
	idleCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	wait := t.page.Context(idleCtx).WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	if err := t.page.Context(idleCtx).Navigate(url); err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: after %s", errWaitTimeout, timeout)
		}
		return err
	}
	wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if idleCtx.Err() != nil {
		return fmt.Errorf("%w: after %s", errWaitTimeout, timeout)
	}
	return nil
}

// element resolves selector within the element timeout. The returned
// element is rebound to ctx, so the lookup timer is released either way.
func (t *rodTab) element(ctx context.Context, selector string) (*rod.Element, error) {
	if t.elementTimeout <= 0 {
		return t.page.Context(ctx).Element(selector)
	}
	p := t.page.Context(ctx).Timeout(t.elementTimeout)
	el, err := p.Element(selector)
	if err != nil {
		p.CancelTimeout()
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", errNoElement, selector)
		}
		return nil, err
	}
	return el.CancelTimeout(), nil
}

// Fill types value into the element matching selector.
func (t *rodTab) Fill(ctx context.Context, selector, value string) error {
	el, err := t.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Input(value)
}

// Click activates the element matching selector with one left click.
func (t *rodTab) Click(ctx context.Context, selector string) error {
	el, err := t.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// ClickAndWait clicks selector and waits up to grace for the resulting load.
// It reports whether a navigation was observed within the grace period.
func (t *rodTab) ClickAndWait(ctx context.Context, selector string, grace time.Duration) (bool, error) {
	graceCtx, cancel := context.WithTimeout(ctx, grace)
	defer cancel()

	wait := t.page.Context(graceCtx).WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := t.Click(ctx, selector); err != nil {
		return false, err
	}
	wait()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	return graceCtx.Err() == nil, nil
}

// URL returns the current document URL.
func (t *rodTab) URL(ctx context.Context) (string, error) {
	info, err := t.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Cookies returns the cookies visible to the current document.
func (t *rodTab) Cookies(ctx context.Context) ([]Cookie, error) {
	raw, err := t.page.Context(ctx).Cookies(nil)
	if err != nil {
		return nil, err
	}
	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			Session:  c.Session,
			SameSite: string(c.SameSite),
		})
	}
	return cookies, nil
}

// SetCookies installs cookies into the tab's browser context.
func (t *rodTab) SetCookies(ctx context.Context, cookies []Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		}
		if !c.Session {
			p.Expires = proto.TimeSinceEpoch(c.Expires)
		}
		params = append(params, p)
	}
	return t.page.Context(ctx).SetCookies(params)
}

// ScrollSize measures document.body's scrollable box.
func (t *rodTab) ScrollSize(ctx context.Context) (Dimensions, error) {
	res, err := t.page.Context(ctx).Eval(scrollSizeJS)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{
		Width:  res.Value.Get("width").Int(),
		Height: res.Value.Get("height").Int(),
	}, nil
}

// Remove deletes every element matching any of selectors.
func (t *rodTab) Remove(ctx context.Context, selectors []string) (int, error) {
	if len(selectors) == 0 {
		return 0, nil
	}
	res, err := t.page.Context(ctx).Eval(removeAllJS, selectors)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// HTML returns the serialized current DOM.
func (t *rodTab) HTML(ctx context.Context) (string, error) {
	return t.page.Context(ctx).HTML()
}

// PDF prints the page with a paper size equal to size.
func (t *rodTab) PDF(ctx context.Context, size Dimensions) ([]byte, error) {
	reader, err := t.page.Context(ctx).PDF(buildPDFOptions(size))
	if err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return buf, nil
}

// Close closes the page and disposes its incognito context.
func (t *rodTab) Close() error {
	if t.page == nil {
		return nil
	}
	err := t.page.Close()
	t.page = nil
	if disposeErr := disposeContext(t.context); err == nil {
		err = disposeErr
	}
	return err
}

// buildPDFOptions sizes the paper to the measured content, without margins.
func buildPDFOptions(size Dimensions) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(float64(size.Width) / cssPixelsPerInch),
		PaperHeight:       floatPtr(float64(size.Height) / cssPixelsPerInch),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
