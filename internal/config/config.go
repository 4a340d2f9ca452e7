package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-dash2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxUsernameLength = 254  // Email-shaped logins (RFC 5321)
	MaxPasswordLength = 1024 // Generous, never logged
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxSelectorLength = 1024 // CSS selector
	MaxNameLength     = 100  // Prune rule name
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "default"

// Config holds all configuration for a dashboard export run.
type Config struct {
	UserDetails UserDetails     `yaml:"user_details"`
	Output      OutputConfig    `yaml:"output"`
	Browser     BrowserConfig   `yaml:"browser"`
	Timeouts    TimeoutsConfig  `yaml:"timeouts"`
	Viewport    ViewportConfig  `yaml:"viewport"`
	Selectors   SelectorsConfig `yaml:"selectors"`
	Prune       []PruneRule     `yaml:"prune"`
	Log         LogConfig       `yaml:"log"`
}

// UserDetails is the static download user. PDF_DOWNLOAD_USER/PASS replace it.
type UserDetails struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	ReportsDir string `yaml:"reportsDir"` // Directory receiving <name>.pdf
	HTML       bool   `yaml:"html"`       // Also write the pruned DOM as <name>.html
}

// BrowserConfig defines browser process options.
type BrowserConfig struct {
	Bin string `yaml:"bin"` // Custom Chrome binary (empty = rod managed)
}

// TimeoutsConfig holds Go duration strings ("60s", "2m").
type TimeoutsConfig struct {
	Idle       string `yaml:"idle"`       // Network-idle wait after dashboard navigation
	Settle     string `yaml:"settle"`     // Pause between pruning and printing ("0s" disables)
	LoginGrace string `yaml:"loginGrace"` // Wait for post-login navigation
	Element    string `yaml:"element"`    // Element lookup bound
}

// ViewportConfig is the dashboard authoring viewport in CSS pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SelectorsConfig addresses the host application's DOM.
type SelectorsConfig struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	LoginButton string `yaml:"loginButton"`
	TabTitle    string `yaml:"tabTitle"` // Must contain exactly one %s
}

// PruneRule is one class of elements removed before printing.
type PruneRule struct {
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level      string `yaml:"level"`      // debug, info, warn, error
	Format     string `yaml:"format"`     // console or json (stderr)
	File       string `yaml:"file"`       // Optional JSON log file, rotated
	MaxSizeMB  int    `yaml:"maxSizeMB"`  // Rotation size
	MaxBackups int    `yaml:"maxBackups"` // Rotated files kept
	MaxAgeDays int    `yaml:"maxAgeDays"` // Rotated file retention
	Compress   bool   `yaml:"compress"`   // Gzip rotated files
}

// DefaultConfig returns the configuration used when no file is found.
// It matches the stock dashboard application's markup.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{ReportsDir: "reports"},
		Timeouts: TimeoutsConfig{
			Idle:       "60s",
			Settle:     "10s",
			LoginGrace: "5s",
			Element:    "10s",
		},
		Viewport: ViewportConfig{Width: 1366, Height: 768},
		Selectors: SelectorsConfig{
			Username:    "#username",
			Password:    "#password",
			LoginButton: "#loginbox > div > div.panel-body > form > div:nth-child(4) > div > div > input",
			TabTitle:    "#%s > div > div > div > span.editable-title > input[type=button]",
		},
		Prune: []PruneRule{
			{Name: "tab-header", Selector: "#app > div > div:nth-child(1) > div.dragdroppable.dragdroppable-column > div > div.with-popover-menu > div > div"},
			{Name: "dashboard-header", Selector: ".dashboard-header"},
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks values and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("user_details.username", c.UserDetails.Username, MaxUsernameLength); err != nil {
		return err
	}
	if err := validateFieldLength("user_details.password", c.UserDetails.Password, MaxPasswordLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.reportsDir", c.Output.ReportsDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}

	// Validate timeouts
	for _, d := range []struct {
		field     string
		value     string
		allowZero bool
	}{
		{"timeouts.idle", c.Timeouts.Idle, false},
		{"timeouts.settle", c.Timeouts.Settle, true},
		{"timeouts.loginGrace", c.Timeouts.LoginGrace, false},
		{"timeouts.element", c.Timeouts.Element, false},
	} {
		if _, err := parseDuration(d.field, d.value, d.allowZero); err != nil {
			return err
		}
	}

	// Validate viewport
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport: must be positive, got %dx%d", ErrInvalidValue, c.Viewport.Width, c.Viewport.Height)
	}

	// Validate selectors
	for _, s := range []struct{ field, value string }{
		{"selectors.username", c.Selectors.Username},
		{"selectors.password", c.Selectors.Password},
		{"selectors.loginButton", c.Selectors.LoginButton},
		{"selectors.tabTitle", c.Selectors.TabTitle},
	} {
		if err := validateFieldLength(s.field, s.value, MaxSelectorLength); err != nil {
			return err
		}
	}
	if c.Selectors.TabTitle != "" && strings.Count(c.Selectors.TabTitle, "%s") != 1 {
		return fmt.Errorf("%w: selectors.tabTitle: must contain exactly one %%s, got %q", ErrInvalidValue, c.Selectors.TabTitle)
	}

	// Validate prune rules
	for i, r := range c.Prune {
		if err := validateFieldLength(fmt.Sprintf("prune[%d].name", i), r.Name, MaxNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("prune[%d].selector", i), r.Selector, MaxSelectorLength); err != nil {
			return err
		}
		if strings.TrimSpace(r.Selector) == "" {
			return fmt.Errorf("%w: prune[%d].selector: required", ErrInvalidValue, i)
		}
	}

	// Validate log settings
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format: %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation settings must not be negative", ErrInvalidValue)
	}

	return nil
}

// IdleTimeout returns timeouts.idle.
func (c *Config) IdleTimeout() (time.Duration, error) {
	return parseDuration("timeouts.idle", c.Timeouts.Idle, false)
}

// SettleDelay returns timeouts.settle.
func (c *Config) SettleDelay() (time.Duration, error) {
	return parseDuration("timeouts.settle", c.Timeouts.Settle, true)
}

// LoginGrace returns timeouts.loginGrace.
func (c *Config) LoginGrace() (time.Duration, error) {
	return parseDuration("timeouts.loginGrace", c.Timeouts.LoginGrace, false)
}

// ElementTimeout returns timeouts.element.
func (c *Config) ElementTimeout() (time.Duration, error) {
	return parseDuration("timeouts.element", c.Timeouts.Element, false)
}

// parseDuration parses a duration field. Empty means "use the built-in default"
// and yields zero.
func parseDuration(field, value string, allowZero bool) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// Keys absent from the file take their DefaultConfig values; a prune list
// in the file replaces the default list.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills empty fields from DefaultConfig.
// Booleans and user_details have no defaults.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	if c.Output.ReportsDir == "" {
		c.Output.ReportsDir = def.Output.ReportsDir
	}

	setIfEmpty(&c.Timeouts.Idle, def.Timeouts.Idle)
	setIfEmpty(&c.Timeouts.Settle, def.Timeouts.Settle)
	setIfEmpty(&c.Timeouts.LoginGrace, def.Timeouts.LoginGrace)
	setIfEmpty(&c.Timeouts.Element, def.Timeouts.Element)

	if c.Viewport.Width == 0 && c.Viewport.Height == 0 {
		c.Viewport = def.Viewport
	}

	setIfEmpty(&c.Selectors.Username, def.Selectors.Username)
	setIfEmpty(&c.Selectors.Password, def.Selectors.Password)
	setIfEmpty(&c.Selectors.LoginButton, def.Selectors.LoginButton)
	setIfEmpty(&c.Selectors.TabTitle, def.Selectors.TabTitle)

	if c.Prune == nil {
		c.Prune = def.Prune
	}

	setIfEmpty(&c.Log.Level, def.Log.Level)
	setIfEmpty(&c.Log.Format, def.Log.Format)
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = def.Log.MaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = def.Log.MaxAgeDays
	}
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// LoadDefault loads the DefaultName config if one exists in a standard
// location, and DefaultConfig otherwise. The returned path is empty when
// no file was used.
func LoadDefault() (*Config, string, error) {
	path, err := resolveConfigPath(DefaultName)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), "", nil
		}
		return nil, "", err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// searchDirs lists config directories in lookup order.
// Overridden in tests.
var searchDirs = func() []string {
	dirs := []string{".", "config"}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, "dash2pdf"))
	}
	return dirs
}

// SearchPaths lists the files tried when looking up a config by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ./config/, ~/.config/dash2pdf/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	dirs := searchDirs()
	paths := make([]string, 0, len(extensions)*len(dirs))
	for _, dir := range dirs {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, path := range triedPaths {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
