//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext derives the run context. An interrupt cancels the export,
// and the deferred teardown then closes the tabs and the browser.
// SIGTERM does not exist on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
