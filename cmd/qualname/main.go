package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	app := &app{fs: afero.NewOsFs()}
	if err := newRootCmd(app).Execute(); err != nil {
		if !app.errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

// app holds flag values and the settings resolved from them.
type app struct {
	fs afero.Fs

	flagConfig   string
	flagFormat   string
	flagLogLevel string

	settings config.Config
	// errorHandled is set by outputError so main() doesn't double-print.
	errorHandled bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "qualname",
		Short: "Qualified names of the code element at a caret",
		Long: "qualname parses a C#, Java or Go source file with tree-sitter and prints the qualified name " +
			"of the type, member or namespace declared or referenced at a caret position.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		// No Run: prints help by default.
	}

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "config file (default: .qualname.yaml at the repo root)")
	root.PersistentFlags().StringVar(&a.flagFormat, "format", "text", "output format: json|text")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "warn", "log level: trace|debug|info|warn|error")

	root.AddCommand(newAtCmd(a))
	root.AddCommand(newLanguagesCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

// setup loads the config file, lets explicitly set flags override it and
// attaches a logger to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	settings, source, err := a.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		settings.Format = a.flagFormat
	}
	if err := validateFormat(settings.Format); err != nil {
		return err
	}
	if flags.Changed("log-level") {
		settings.LogLevel = a.flagLogLevel
	}
	level, err := settings.Level()
	if err != nil {
		return err
	}
	a.settings = settings

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Str("command", cmd.Name()).
		Logger()
	if source != "" {
		logger.Debug().Str("config", source).Msg("loaded config")
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func (a *app) loadConfig() (config.Config, string, error) {
	if a.flagConfig != "" {
		cfg, err := config.Load(a.fs, a.flagConfig)
		return cfg, a.flagConfig, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), "", errors.Errorf("getting working directory: %w", err)
	}
	return config.Discover(a.fs, wd)
}
