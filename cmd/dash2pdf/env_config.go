package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-dash2pdf/internal/config"
)

// envPrefix marks variables owned by this tool.
const envPrefix = "DASH2PDF_"

// envConfig holds configuration from environment variables.
// Provides scheduler-friendly overrides without editing YAML files.
// Credentials are not here: PDF_DOWNLOAD_USER/PASS are read by the library.
type envConfig struct {
	ConfigPath  string // DASH2PDF_CONFIG: config file name or path
	ReportsDir  string // DASH2PDF_REPORTS_DIR: output directory
	IdleTimeout string // DASH2PDF_IDLE_TIMEOUT: network-idle wait
	Settle      string // DASH2PDF_SETTLE: pause before printing
	LogLevel    string // DASH2PDF_LOG_LEVEL: debug, info, warn, error
	LogFile     string // DASH2PDF_LOG_FILE: rotated JSON log file
	BrowserBin  string // ROD_BROWSER_BIN: custom Chrome binary
}

// knownEnvVars lists valid DASH2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DASH2PDF_CONFIG":       true,
	"DASH2PDF_REPORTS_DIR":  true,
	"DASH2PDF_IDLE_TIMEOUT": true,
	"DASH2PDF_SETTLE":       true,
	"DASH2PDF_LOG_LEVEL":    true,
	"DASH2PDF_LOG_FILE":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations are dropped here; the config value stays in effect.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.getenv("DASH2PDF_CONFIG"),
		ReportsDir: env.getenv("DASH2PDF_REPORTS_DIR"),
		LogLevel:   env.getenv("DASH2PDF_LOG_LEVEL"),
		LogFile:    env.getenv("DASH2PDF_LOG_FILE"),
		BrowserBin: env.getenv("ROD_BROWSER_BIN"),
	}

	if v := env.getenv("DASH2PDF_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.IdleTimeout = v
		}
	}
	if v := env.getenv("DASH2PDF_SETTLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Settle = v
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized DASH2PDF_* variables.
// Helps catch typos like DASH2PDF_REPORT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ReportsDir != "" {
		cfg.Output.ReportsDir = env.ReportsDir
	}
	if env.IdleTimeout != "" {
		cfg.Timeouts.Idle = env.IdleTimeout
	}
	if env.Settle != "" {
		cfg.Timeouts.Settle = env.Settle
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
}
