package dash2pdf

import (
	"fmt"
	"net/url"
	"strings"
)

// NoTab is the positional sentinel meaning "do not switch dashboard tabs".
const NoTab = "Null"

// argCount is the exact number of positional arguments a run accepts.
const argCount = 4

// Params holds the immutable inputs of one export run.
type Params struct {
	TargetURL  string // Absolute dashboard URL
	OutputName string // Base name of the PDF, without extension
	Tab        string // Tab identifier, or NoTab
	Origin     string // Base URL of the host application
}

// ParseArgs builds Params from positional arguments in the order
// url, name, tab, origin. Any other argument count is rejected.
func ParseArgs(args []string) (Params, error) {
	if len(args) != argCount {
		return Params{}, fmt.Errorf("%w: expected %d arguments, got %d", ErrInvalidParams, argCount, len(args))
	}
	p := Params{
		TargetURL:  strings.TrimSpace(args[0]),
		OutputName: strings.TrimSpace(args[1]),
		Tab:        strings.TrimSpace(args[2]),
		Origin:     strings.TrimSpace(args[3]),
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that the run can start without touching a browser.
func (p Params) Validate() error {
	if p.TargetURL == "" || p.Origin == "" {
		return fmt.Errorf("%w: %w", ErrInvalidParams, ErrEmptyURL)
	}
	if err := validateHTTPURL("url", p.TargetURL); err != nil {
		return err
	}
	if err := validateHTTPURL("origin", p.Origin); err != nil {
		return err
	}
	if p.OutputName == "" || strings.ContainsAny(p.OutputName, "/\\\x00") || p.OutputName == "." || p.OutputName == ".." {
		return fmt.Errorf("%w: %w: %q", ErrInvalidParams, ErrInvalidName, p.OutputName)
	}
	if p.Tab == "" {
		return fmt.Errorf("%w: %w", ErrInvalidParams, ErrEmptyTab)
	}
	return nil
}

// WantsTab reports whether a tab switch was requested. Only NoTab opts out.
func (p Params) WantsTab() bool {
	return p.Tab != NoTab
}

// LoginURL returns the login endpoint of the host application.
func (p Params) LoginURL() string {
	return strings.TrimRight(p.Origin, "/") + "/login/"
}

// validateHTTPURL requires an absolute http(s) URL with a host.
func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidParams, field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s: unsupported scheme %q", ErrInvalidParams, field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %s: missing host", ErrInvalidParams, field)
	}
	return nil
}
