package dash2pdf

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Credentials is the username/password pair used to log in.
// The password is never rendered by String or by structured logging.
type Credentials struct {
	Username string
	Password string
}

// String implements fmt.Stringer without exposing the password.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:[redacted]", c.Username)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c Credentials) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("username", c.Username)
	enc.AddBool("password_set", c.Password != "")
	return nil
}

// Dimensions is the scrollable size of the dashboard content in CSS pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Cookie is a browser-independent copy of one session cookie.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	Expires  float64 // Seconds since epoch, ignored when Session is true
	HTTPOnly bool
	Secure   bool
	Session  bool
	SameSite string
}

// Session is the opaque authenticated state captured after login.
// It is passed by value from the login context to the dashboard context.
type Session struct {
	LoginURL   string // Page that issued the cookies
	Cookies    []Cookie
	CapturedAt time.Time
}

// Empty reports whether the session carries no cookies.
func (s Session) Empty() bool {
	return len(s.Cookies) == 0
}

// Selectors addresses the host application's DOM.
type Selectors struct {
	Username    string // Login username field
	Password    string // Login password field
	LoginButton string // Login submit control
	TabTitle    string // Tab-title control, a fmt template with one %s for the tab identifier
}

// DefaultSelectors returns selectors matching the stock dashboard application.
func DefaultSelectors() Selectors {
	return Selectors{
		Username:    "#username",
		Password:    "#password",
		LoginButton: "#loginbox > div > div.panel-body > form > div:nth-child(4) > div > div > input",
		TabTitle:    "#%s > div > div > div > span.editable-title > input[type=button]",
	}
}

// TabSelector builds the selector of the tab-title control for id.
func (s Selectors) TabSelector(id string) string {
	return fmt.Sprintf(s.TabTitle, id)
}

// Result describes a finished export.
type Result struct {
	RunID      string
	Path       string     // Written PDF
	HTMLPath   string     // Pruned DOM snapshot, empty unless requested
	Dimensions Dimensions // Page size used for the PDF
	Pruned     int        // Elements removed from the page
	Bytes      int        // PDF size
}
