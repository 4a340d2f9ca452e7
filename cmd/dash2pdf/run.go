package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	dash2pdf "github.com/alnah/go-dash2pdf"
	"github.com/alnah/go-dash2pdf/internal/config"
	"github.com/alnah/go-dash2pdf/internal/hints"
	"github.com/alnah/go-dash2pdf/internal/logging"
)

// ErrUsage reports bad command-line flags.
var ErrUsage = errors.New("invalid usage")

// runMain parses args, runs one export and returns the process exit code.
// Argument and config errors return before any browser is started.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return fail(env, fmt.Errorf("%w: %v", ErrUsage, err), "")
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "dash2pdf %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	res, err := run(ctx, positional, flags, env)
	if err != nil {
		return fail(env, err, res.hint)
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, res.result.Path)
	}
	return ExitSuccess
}

// runResult carries what runMain prints.
type runResult struct {
	result *dash2pdf.Result
	hint   string
}

// run resolves parameters, config, logging and credentials, then exports.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment) (runResult, error) {
	params, err := dash2pdf.ParseArgs(positional)
	if err != nil {
		return runResult{}, err
	}

	envCfg := loadEnvConfig(env)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, cfgPath, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return runResult{hint: configHint(err, flags.common.config, envCfg.ConfigPath)}, fmt.Errorf("loading config: %w", err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return runResult{}, err
	}

	logger, closeLog := logging.New(env.Stderr, logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Name:       "dash2pdf",
	})
	defer func() { _ = closeLog() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	defer undo()

	if cfgPath != "" {
		logger.Debug("config loaded", zap.String("path", cfgPath))
	}

	opts, err := exporterOptions(cfg, logger)
	if err != nil {
		return runResult{}, err
	}

	_, fromEnv := env.LookupEnv(dash2pdf.EnvDownloadUser)
	creds := dash2pdf.ResolveCredentials(dash2pdf.Credentials{
		Username: cfg.UserDetails.Username,
		Password: cfg.UserDetails.Password,
	}, env.LookupEnv)

	result, err := env.NewExporter(opts...).Export(ctx, params, creds)
	if err != nil {
		logger.Error("export failed",
			zap.String("kind", errorKind(err)),
			zap.String("name", params.OutputName),
			zap.Error(err))
		return runResult{hint: exportHint(err, params, fromEnv)}, err
	}
	return runResult{result: result}, nil
}

// loadConfig resolves the config: --config, then DASH2PDF_CONFIG, then the
// default name in the standard locations, then built-in defaults.
func loadConfig(flagValue, envValue string) (*config.Config, string, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.LoadDefault()
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// exporterOptions translates a validated config into exporter options.
func exporterOptions(cfg *config.Config, logger *zap.Logger) ([]dash2pdf.Option, error) {
	opts := []dash2pdf.Option{
		dash2pdf.WithLogger(logger),
		dash2pdf.WithReportsDir(cfg.Output.ReportsDir),
		dash2pdf.WithHTMLSnapshot(cfg.Output.HTML),
		dash2pdf.WithBrowserBin(cfg.Browser.Bin),
		dash2pdf.WithViewport(dash2pdf.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}),
		dash2pdf.WithSelectors(dash2pdf.Selectors{
			Username:    cfg.Selectors.Username,
			Password:    cfg.Selectors.Password,
			LoginButton: cfg.Selectors.LoginButton,
			TabTitle:    cfg.Selectors.TabTitle,
		}),
	}

	rules := make([]dash2pdf.PruneRule, 0, len(cfg.Prune))
	for _, r := range cfg.Prune {
		rules = append(rules, dash2pdf.PruneRule{Name: r.Name, Selector: r.Selector})
	}
	opts = append(opts, dash2pdf.WithPrunePolicy(dash2pdf.PrunePolicy{Rules: rules}))

	idle, err := cfg.IdleTimeout()
	if err != nil {
		return nil, err
	}
	if idle > 0 {
		opts = append(opts, dash2pdf.WithIdleTimeout(idle))
	}

	settle, err := cfg.SettleDelay()
	if err != nil {
		return nil, err
	}
	if cfg.Timeouts.Settle != "" {
		opts = append(opts, dash2pdf.WithSettleDelay(settle))
	}

	grace, err := cfg.LoginGrace()
	if err != nil {
		return nil, err
	}
	if grace > 0 {
		opts = append(opts, dash2pdf.WithLoginGrace(grace))
	}

	element, err := cfg.ElementTimeout()
	if err != nil {
		return nil, err
	}
	if element > 0 {
		opts = append(opts, dash2pdf.WithElementTimeout(element))
	}

	return opts, nil
}

// configHint suggests a fix for config lookup failures.
func configHint(err error, flagValue, envValue string) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		name = config.DefaultName
	}
	return hints.ForConfigNotFound(config.SearchPaths(name))
}

// exportHint suggests a fix for export failures.
func exportHint(err error, p dash2pdf.Params, credsFromEnv bool) string {
	switch {
	case errors.Is(err, dash2pdf.ErrBrowserLaunch):
		return hints.ForBrowserLaunch()
	case errors.Is(err, dash2pdf.ErrAuthRejected):
		return hints.ForAuthRejected(credsFromEnv)
	case errors.Is(err, dash2pdf.ErrIdleTimeout):
		return hints.ForIdleTimeout()
	case errors.Is(err, dash2pdf.ErrTabNotFound):
		return hints.ForTabNotFound(p.Tab)
	case errors.Is(err, dash2pdf.ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}

// fail prints err with its kind and hint and returns the exit code.
func fail(env *Environment, err error, hint string) int {
	fmt.Fprintf(env.Stderr, "dash2pdf: %s error: %v%s\n", errorKind(err), err, hint)
	return exitCodeFor(err)
}
