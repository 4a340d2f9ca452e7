package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-dash2pdf/internal/config"
)

// commonFlags holds logging and config flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logFile string
}

// timeoutFlags holds wait overrides as Go duration strings.
type timeoutFlags struct {
	idle       string
	settle     string
	loginGrace string
}

// cliFlags holds all flags of the dash2pdf command.
type cliFlags struct {
	common     commonFlags
	reportsDir string
	timeouts   timeoutFlags
	html       bool
	version    bool
	help       bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "also write JSON logs to this rotated file")
}

// addTimeoutFlags adds wait flags to a FlagSet.
func addTimeoutFlags(fs *flag.FlagSet, f *timeoutFlags) {
	fs.StringVar(&f.idle, "idle-timeout", "", "network-idle wait after navigation (e.g., 60s, 2m)")
	fs.StringVar(&f.settle, "settle", "", "pause before printing (0s disables)")
	fs.StringVar(&f.loginGrace, "login-grace", "", "wait for navigation after the login click")
}

// parseFlags parses args (without the program name) and returns the
// positional arguments. Usage goes to w on parse errors.
func parseFlags(args []string, w io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("dash2pdf", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &cliFlags{}

	fs.StringVarP(&f.reportsDir, "reports-dir", "o", "", "directory receiving <name>.pdf")
	fs.BoolVar(&f.html, "html", false, "write the pruned DOM as <name>.html next to the PDF")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addTimeoutFlags(fs, &f.timeouts)

	fs.Usage = func() { printUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags applies explicitly set flags over cfg (CLI wins).
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.reportsDir != "" {
		cfg.Output.ReportsDir = f.reportsDir
	}
	if f.timeouts.idle != "" {
		cfg.Timeouts.Idle = f.timeouts.idle
	}
	if f.timeouts.settle != "" {
		cfg.Timeouts.Settle = f.timeouts.settle
	}
	if f.timeouts.loginGrace != "" {
		cfg.Timeouts.LoginGrace = f.timeouts.loginGrace
	}
	if f.html {
		cfg.Output.HTML = true
	}
	if f.common.logFile != "" {
		cfg.Log.File = f.common.logFile
	}
	switch {
	case f.common.verbose:
		cfg.Log.Level = "debug"
	case f.common.quiet:
		cfg.Log.Level = "error"
	}
}
