// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-dash2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserLaunch returns hints for browser launch errors.
func ForBrowserLaunch() string {
	var hints []string

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN or browser.bin to use an installed Chrome")
	}
	if IsInContainer() {
		hints = append(hints, "containers need Chrome's shared libraries (e.g. chromium package)")
	}

	return formatHints(hints)
}

// ForAuthRejected returns hints for rejected logins.
// It names the credential source that was actually used.
func ForAuthRejected(fromEnv bool) string {
	if fromEnv {
		return format("check PDF_DOWNLOAD_USER and PDF_DOWNLOAD_PASS")
	}
	return format("check user_details.username and user_details.password in the config, or set PDF_DOWNLOAD_USER/PDF_DOWNLOAD_PASS")
}

// ForIdleTimeout returns a hint about raising the network-idle wait.
func ForIdleTimeout() string {
	return format("for slow dashboards, use --idle-timeout (e.g. --idle-timeout 3m)")
}

// ForTabNotFound returns hints for a tab identifier that resolves to nothing.
func ForTabNotFound(tab string) string {
	if tab == "" {
		return ""
	}
	return format("no element matches tab \"" + tab + "\"; pass Null to keep the default tab or check selectors.tabTitle")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/dash2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/dash2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for report write errors.
func ForOutputDirectory() string {
	return format("check the reports directory exists and is writable, or use --reports-dir")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
