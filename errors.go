package dash2pdf

import "errors"

// Sentinel errors for export operations.
var (
	// Run parameter errors.
	ErrInvalidParams = errors.New("invalid run parameters")
	ErrEmptyURL      = errors.New("target URL and origin are required")
	ErrInvalidName   = errors.New("invalid output name")
	ErrEmptyTab      = errors.New("tab identifier is required, use Null for none")

	// Browser lifecycle errors.
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageCreate    = errors.New("failed to create browser page")

	// Authentication errors.
	ErrLoginPage      = errors.New("failed to load login page")
	ErrLoginForm      = errors.New("failed to submit login form")
	ErrAuthRejected   = errors.New("login rejected")
	ErrCookieTransfer = errors.New("failed to transfer session cookies")

	// Dashboard render errors.
	ErrNavigation  = errors.New("failed to load dashboard")
	ErrIdleTimeout = errors.New("dashboard never reached network idle")
	ErrMeasure     = errors.New("failed to measure dashboard content")
	ErrTabNotFound = errors.New("dashboard tab not found")
	ErrTabClick    = errors.New("failed to activate dashboard tab")
	ErrPrune       = errors.New("failed to prune dashboard chrome")

	// Export errors.
	ErrPDFGeneration = errors.New("PDF generation failed")
	ErrWritePDF      = errors.New("failed to write PDF file")
)
