package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/utilkit/pkg/config"
	"github.com/dmitrymomot/utilkit/pkg/logger"
)

// ErrValidationFailed is returned by the validate command when the data does
// not pass. The error bag has already been printed.
var ErrValidationFailed = errors.New("validation failed")

// Option configures the command tree.
type Option func(*app)

// WithOutput redirects command output and logs.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *app) {
		a.out = out
		a.errOut = errOut
	}
}

// WithClock replaces time.Now for the date commands.
func WithClock(clock func() time.Time) Option {
	return func(a *app) { a.clock = clock }
}

type app struct {
	out    io.Writer
	errOut io.Writer
	clock  func() time.Time
	log    *slog.Logger

	logLevel  string
	logFormat string
}

// NewRootCmd builds the utilkit command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{out: os.Stdout, errOut: os.Stderr, clock: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "utilkit",
		Short:         "Validate data, inspect caches and work with dates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (default $LOG_FORMAT)")

	root.AddCommand(
		newValidateCmd(a),
		newCacheCmd(a),
		newDateCmd(a),
	)
	return root
}

func (a *app) setupLogger(cmd *cobra.Command) error {
	var cfg logger.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Format = a.logFormat
	}

	opts, err := logger.FromConfig(cfg, "utilkit")
	if err != nil {
		return err
	}
	a.log = logger.New(append(opts, logger.WithOutput(a.errOut))...)
	cmd.SetContext(logger.ContextWithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath())))
	return nil
}
