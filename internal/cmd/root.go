package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/egypt/internal/batch"
	"github.com/Iron-Ham/egypt/internal/config"
	"github.com/Iron-Ham/egypt/internal/egypt"
	"github.com/Iron-Ham/egypt/internal/errors"
	"github.com/Iron-Ham/egypt/internal/logging"
	"github.com/Iron-Ham/egypt/internal/output"
	"github.com/Iron-Ham/egypt/internal/rpn"
)

// app is the state shared by one command tree.
type app struct {
	v         *viper.Viper
	cfgFile   string
	batchMode bool
}

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"decompose.reverse": "reverse",
	"decompose.merge":   "merge",
	"decompose.raw":     "raw",
	"decompose.bisect":  "bisect",
	"decompose.limit":   "limit",
	"output.silent":     "silent",
	"output.format":     "format",
	"output.stats":      "stats",
	"batch.workers":     "workers",
}

// persistentFlagKeys are bound from flags every subcommand sees.
var persistentFlagKeys = map[string]string{
	"logging.level": "log-level",
	"logging.file":  "log-file",
}

// NewRootCommand builds the egypt command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "egypt [flags] [numerator] [denominator]",
		Short: "Write fractions as sums of distinct unit fractions",
		Long: `egypt decomposes a non-negative rational into a sum of distinct unit
fractions (an Egyptian fraction), with any whole part reported separately.

The numerator and denominator are RPN expressions and default to 1:
  egypt 7 11
  egypt "2 127 ^ 1 -" "2 89 ^"
  egypt -- -3 4          # negative operands follow --; signs are dropped

With --batch, tab separated numerator and denominator pairs are read from
stdin, one per line, and one result line is written per input line.`,
		Version:       Version,
		Args:          maxArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		RunE: a.runDecompose,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewValidationError(err.Error())
	})

	// Global flags
	pflags := rootCmd.PersistentFlags()
	pflags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.config/egypt/config.yaml)")
	pflags.String("log-level", "", "log level: debug, info, warn, error (default off)")
	pflags.String("log-file", "", "log file path (default stderr)")

	flags := rootCmd.Flags()
	flags.BoolP("reverse", "r", false, "merge from the largest denominator; reverse raw term order")
	flags.BoolP("merge", "m", false, "coalesce spans that sum to a unit fraction")
	flags.Bool("raw", false, "print symbolic terms instead of unit fractions")
	flags.Bool("bisect", false, "split long runs in raw mode")
	flags.BoolP("silent", "s", false, "decompose without printing results")
	flags.BoolVar(&a.batchMode, "batch", false, "read tab separated pairs from stdin")
	flags.IntP("limit", "l", egypt.DefaultLimit, "longest run kept before bisection (min 2)")
	flags.StringP("format", "f", "text", "output format: "+strings.Join(config.ValidOutputFormats(), ", "))
	flags.Bool("stats", false, "include pipeline statistics (json, yaml) and a batch summary")
	flags.Int("workers", 0, "concurrent batch decompositions (default one per CPU)")

	bindFlags(a.v, flags, flagKeys)
	bindFlags(a.v, pflags, persistentFlagKeys)

	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command and reports any failure to stderr. It
// returns the process exit code.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ReportError(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// ReportError writes err to w. User-facing errors are printed as they are;
// anything else is flagged as an internal failure. Mistakes in the command
// line or configuration also point at the help text.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if !errors.IsUserFacing(err) && !errors.Is(err, errors.ErrInvalidInput) && !errors.Is(err, errors.ErrCanceled) {
		fmt.Fprintf(w, "egypt: internal error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "egypt: %v\n", err)
	if errors.GetSeverity(err) <= errors.SeverityWarning {
		fmt.Fprintln(w, "Run 'egypt --help' for usage.")
	}
}

// bindFlags lets each flag in fs override its configuration key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return errors.NewValidationError(fmt.Sprintf("accepts at most %d arguments, received %d", n, len(args))).
				WithField("args").
				WithValue(strings.Join(args, " "))
		}
		return nil
	}
}

func (a *app) initConfig() error {
	// Set defaults first so they're available even without a config file
	config.SetDefaults(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
	}

	a.v.SetEnvPrefix("EGYPT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., EGYPT_DECOMPOSE_LIMIT for decompose.limit
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		// A missing file on the search path is fine; an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.NewValidationError("cannot read config file").
			WithField("config").
			WithValue(a.cfgFile).
			WithCause(err)
	}
	return nil
}

func (a *app) runDecompose(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return errors.Wrap(err, "open log")
	}
	defer func() { _ = logger.Close() }()

	d, err := egypt.New(cfg.Decompose.Options(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	formatter, err := newFormatter(cfg.Output, a.batchMode, out)
	if err != nil {
		return err
	}

	if a.batchMode {
		if len(args) > 0 {
			return errors.NewValidationError("positional arguments cannot be combined with --batch").
				WithField("args").
				WithValue(strings.Join(args, " "))
		}
		runner := batch.NewRunner(d, formatter, batch.Options{
			Workers:   cfg.Batch.Workers,
			ChunkSize: cfg.Batch.ChunkSize,
		}, logger)
		sum, err := runner.Run(cmd.Context(), cmd.InOrStdin(), out)
		if cfg.Output.Stats {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d lines, %d decomposed, %d rejected\n", sum.Lines, sum.Succeeded, sum.Failed)
		}
		return err
	}

	num, err := evalOperand("numerator", args, 0)
	if err != nil {
		return err
	}
	den, err := evalOperand("denominator", args, 1)
	if err != nil {
		return err
	}

	res, err := d.Decompose(num, den)
	if err != nil {
		return err
	}
	if err := formatter.Format(out, res); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}

// evalOperand evaluates args[i], or "1" when it is absent, and drops the sign.
func evalOperand(name string, args []string, i int) (*big.Int, error) {
	expr := "1"
	if i < len(args) {
		expr = args[i]
	}
	n, err := rpn.Eval(expr)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return n.Abs(n), nil
}

func newFormatter(cfg config.OutputConfig, batchMode bool, out io.Writer) (output.Formatter, error) {
	if cfg.Silent {
		return output.Discard{}, nil
	}
	f, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	// Batch input gets one line per pair unless another format was asked for
	if batchMode && f == output.FormatText {
		f = output.FormatBatch
	}
	width := output.DefaultWidth
	if file, ok := out.(*os.File); ok {
		width = output.TerminalWidth(file)
	}
	return output.New(f, output.Options{Width: width, Stats: cfg.Stats})
}

// newLogger returns a no-op logger unless a level is configured. Without a
// log file, logs go to stderr.
func newLogger(cfg config.LoggingConfig, stderr io.Writer) (*logging.Logger, error) {
	if cfg.Level == "" {
		return logging.NopLogger(), nil
	}
	level := logging.ParseLevel(cfg.Level)
	if cfg.File == "" {
		return logging.NewWriterLogger(stderr, level), nil
	}
	return logging.NewLogger(cfg.File, level, logging.RotationConfig{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
}
