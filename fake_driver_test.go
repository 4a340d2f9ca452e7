package dash2pdf

// Notes:
// - fakeBrowser is a scripted, recording stand-in for rodDriver. Every call
//   is appended to an ordered event log so tests can assert stage ordering
//   (cookies before navigation, measurement before pruning, teardown).
// - The dashboard DOM is a goquery document; Click, Remove and HTML act on
//   it the way the in-page scripts act on the live DOM.

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fakeOrigin    = "https://bi.example.com"
	fakeLoginURL  = fakeOrigin + "/login/"
	fakeDashboard = fakeOrigin + "/superset/dashboard/7/"
	fakeWelcome   = fakeOrigin + "/superset/welcome/"
	fakeUser      = "reporter"
	fakePass      = "s3cret"
)

// dashboardHTML carries both default chrome classes and one tab (TABS-1).
const dashboardHTML = `<html><head></head><body>
<div id="app"><div><div><div class="dragdroppable dragdroppable-column"><div><div class="with-popover-menu"><div><div>Q4 tabs</div></div></div></div></div></div></div></div>
<header class="dashboard-header">Toolbar</header>
<div id="TABS-1"><div><div><div><span class="editable-title"><input type="button" value="Sales"/></span></div></div></div></div>
<div class="chart">revenue</div>
</body></html>`

func sessionCookies() []Cookie {
	return []Cookie{
		{Name: "session", Value: "abc123", Domain: "bi.example.com", Path: "/", HTTPOnly: true, Secure: true, Session: true, SameSite: "Lax"},
		{Name: "csrf_token", Value: "tok", Domain: "bi.example.com", Path: "/", Expires: 1893456000},
	}
}

// fakeBrowser scripts one browser process.
type fakeBrowser struct {
	mu     sync.Mutex
	events []string
	tabs   []*fakeTab
	closed int

	// Login behavior
	user, pass      string
	issuedCookies   []Cookie
	redirectTo      string
	noNavigation    bool
	dashboardDims   Dimensions
	dashboardMarkup string
	pdfBytes        []byte

	// fail maps an operation name to the error it returns.
	fail map[string]error

	// jarAtNavigate is the dashboard tab's cookie jar when it first navigated.
	jarAtNavigate []Cookie
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		user:            fakeUser,
		pass:            fakePass,
		issuedCookies:   sessionCookies(),
		redirectTo:      fakeWelcome,
		dashboardDims:   Dimensions{Width: 1280, Height: 2400},
		dashboardMarkup: dashboardHTML,
		pdfBytes:        minimalPDF(1280*pointsPerCSSPixel, 2400*pointsPerCSSPixel),
		fail:            map[string]error{},
	}
}

func (b *fakeBrowser) launcher() launchFunc {
	return func(context.Context, launchOptions) (driver, error) {
		if err := b.fail["launch"]; err != nil {
			return nil, err
		}
		b.record("launch")
		return b, nil
	}
}

func (b *fakeBrowser) record(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, fmt.Sprintf(format, args...))
}

func (b *fakeBrowser) log() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

func (b *fakeBrowser) closeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *fakeBrowser) NewTab(_ context.Context, vp *Viewport) (tab, error) {
	if err := b.fail["newTab"]; err != nil {
		return nil, err
	}
	b.mu.Lock()
	t := &fakeTab{id: len(b.tabs) + 1, b: b, url: "about:blank"}
	b.tabs = append(b.tabs, t)
	b.mu.Unlock()

	if vp != nil {
		b.record("new tab%d %dx%d", t.id, vp.Width, vp.Height)
	} else {
		b.record("new tab%d", t.id)
	}
	return t, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	b.closed++
	b.mu.Unlock()
	b.record("browser close")
	return nil
}

// fakeTab is one isolated page: own URL, cookie jar and DOM.
type fakeTab struct {
	id     int
	b      *fakeBrowser
	url    string
	jar    []Cookie
	fields map[string]string
	doc    *goquery.Document
	closed bool
}

func (t *fakeTab) op(name, format string, args ...any) error {
	t.b.record("tab%d %s", t.id, strings.TrimSpace(name+" "+fmt.Sprintf(format, args...)))
	return t.b.fail[name]
}

func (t *fakeTab) Navigate(_ context.Context, url string) error {
	if err := t.op("navigate", "%s", url); err != nil {
		return err
	}
	t.url = url
	return nil
}

func (t *fakeTab) NavigateIdle(ctx context.Context, url string, _ time.Duration) error {
	t.b.mu.Lock()
	if t.b.jarAtNavigate == nil {
		t.b.jarAtNavigate = append([]Cookie{}, t.jar...)
	}
	t.b.mu.Unlock()

	if err := t.op("navigateIdle", "%s", url); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(t.b.dashboardMarkup))
	if err != nil {
		return err
	}
	t.url = url
	t.doc = doc
	return nil
}

func (t *fakeTab) Fill(_ context.Context, selector, value string) error {
	if err := t.op("fill", "%s", selector); err != nil {
		return err
	}
	if t.fields == nil {
		t.fields = map[string]string{}
	}
	t.fields[selector] = value
	return nil
}

func (t *fakeTab) Click(_ context.Context, selector string) error {
	if err := t.op("click", "%s", selector); err != nil {
		return err
	}
	if t.doc == nil || t.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", errNoElement, selector)
	}
	return nil
}

func (t *fakeTab) ClickAndWait(_ context.Context, selector string, _ time.Duration) (bool, error) {
	if err := t.op("clickAndWait", "%s", selector); err != nil {
		return false, err
	}
	sel := DefaultSelectors()
	if t.fields[sel.Username] != t.b.user || t.fields[sel.Password] != t.b.pass {
		// Login form re-renders with an error, no cookie issued.
		return !t.b.noNavigation, nil
	}
	t.jar = append([]Cookie{}, t.b.issuedCookies...)
	if !t.b.noNavigation {
		t.url = t.b.redirectTo
	}
	return !t.b.noNavigation, nil
}

func (t *fakeTab) URL(context.Context) (string, error) {
	if err := t.op("url", ""); err != nil {
		return "", err
	}
	return t.url, nil
}

func (t *fakeTab) Cookies(context.Context) ([]Cookie, error) {
	if err := t.op("cookies", ""); err != nil {
		return nil, err
	}
	return append([]Cookie{}, t.jar...), nil
}

func (t *fakeTab) SetCookies(_ context.Context, cookies []Cookie) error {
	if err := t.op("setCookies", "%d", len(cookies)); err != nil {
		return err
	}
	t.jar = append(t.jar, cookies...)
	return nil
}

func (t *fakeTab) ScrollSize(context.Context) (Dimensions, error) {
	if err := t.op("scrollSize", ""); err != nil {
		return Dimensions{}, err
	}
	return t.b.dashboardDims, nil
}

func (t *fakeTab) Remove(_ context.Context, selectors []string) (int, error) {
	if err := t.op("remove", "%d", len(selectors)); err != nil {
		return 0, err
	}
	removed := 0
	for _, sel := range selectors {
		matches := t.doc.Find(sel)
		removed += matches.Length()
		matches.Remove()
	}
	return removed, nil
}

func (t *fakeTab) HTML(context.Context) (string, error) {
	if err := t.op("html", ""); err != nil {
		return "", err
	}
	return t.doc.Html()
}

func (t *fakeTab) PDF(_ context.Context, size Dimensions) ([]byte, error) {
	if err := t.op("pdf", "%dx%d", size.Width, size.Height); err != nil {
		return nil, err
	}
	return t.b.pdfBytes, nil
}

func (t *fakeTab) Close() error {
	t.closed = true
	return t.op("close", "")
}

// minimalPDF builds a one-page PDF with the given MediaBox in points.
func minimalPDF(width, height float64) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] /Resources << >> /Contents 4 0 R >>", width, height),
		"<< /Length 3 >>\nstream\nq Q\nendstream",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Compile-time interface checks
var (
	_ driver = (*fakeBrowser)(nil)
	_ tab    = (*fakeTab)(nil)
)
