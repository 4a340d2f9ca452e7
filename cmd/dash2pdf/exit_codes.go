package main

import (
	"context"
	"errors"

	dash2pdf "github.com/alnah/go-dash2pdf"
	"github.com/alnah/go-dash2pdf/internal/config"
)

// Exit codes for the dash2pdf CLI.
// Every failure maps to 1; schedulers only distinguish success from failure.
const (
	ExitSuccess = 0 // PDF written
	ExitFailure = 1 // Any failure, including bad arguments
)

// Failure kinds reported in the final log line.
const (
	kindConfiguration  = "configuration"
	kindAuthentication = "authentication"
	kindNavigation     = "navigation"
	kindInteraction    = "interaction"
	kindExport         = "export"
	kindBrowser        = "browser"
	kindCanceled       = "canceled"
	kindUnknown        = "unknown"
)

// exitCodeFor returns the process exit code for err.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// errorKind classifies err for logs and messages.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, context.Canceled):
		return kindCanceled

	case errors.Is(err, dash2pdf.ErrInvalidParams),
		errors.Is(err, ErrUsage),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidValue):
		return kindConfiguration

	case errors.Is(err, dash2pdf.ErrLoginPage),
		errors.Is(err, dash2pdf.ErrLoginForm),
		errors.Is(err, dash2pdf.ErrAuthRejected),
		errors.Is(err, dash2pdf.ErrCookieTransfer):
		return kindAuthentication

	case errors.Is(err, dash2pdf.ErrNavigation),
		errors.Is(err, dash2pdf.ErrIdleTimeout),
		errors.Is(err, dash2pdf.ErrMeasure):
		return kindNavigation

	case errors.Is(err, dash2pdf.ErrTabNotFound),
		errors.Is(err, dash2pdf.ErrTabClick),
		errors.Is(err, dash2pdf.ErrPrune):
		return kindInteraction

	case errors.Is(err, dash2pdf.ErrPDFGeneration),
		errors.Is(err, dash2pdf.ErrWritePDF):
		return kindExport

	case errors.Is(err, dash2pdf.ErrBrowserLaunch),
		errors.Is(err, dash2pdf.ErrPageCreate):
		return kindBrowser
	}
	return kindUnknown
}
