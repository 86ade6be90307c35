package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/erraggy/speclint"
	"github.com/erraggy/speclint/internal/cliutil"
	"github.com/erraggy/speclint/internal/config"
	"github.com/erraggy/speclint/parser"
)

// app carries the settings shared by every command. It is filled in by the
// root command's PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool
	color      string
	format     string

	cfg    *config.Config
	log    *zap.Logger
	styler *cliutil.Styler
}

// engineLogger adapts the CLI logger for the engines.
func (a *app) engineLogger() parser.Logger {
	return parser.NewZapLogger(a.log)
}

// NewRootCommand builds the speclint command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "speclint",
		Short: "Lint, fix and diff API specification documents",
		Long: `speclint checks Swagger 2.0, OpenAPI 3.x and bespoke API documents against
house rules, repairs what can be repaired automatically, and reports how a
fixed document differs from the original.`,
		Version:       speclint.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./"+config.DefaultFileName+" if present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.StringVar(&a.color, "color", "", "colorize output: auto, always or never (default from config)")
	flags.StringVarP(&a.format, "format", "f", "", "output format: text or json (default from config)")

	root.AddCommand(
		newAnalyzeCommand(a),
		newFixCommand(a),
		newDiffCommand(a),
		newWatchCommand(a),
		newMCPCommand(a),
		newRulesCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.format != "" {
		if a.format != config.FormatText && a.format != config.FormatJSON {
			return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", a.format, config.FormatText, config.FormatJSON)
		}
		cfg.Output.Format = a.format
	}
	if a.color != "" {
		cfg.Output.Color = a.color
	}
	a.cfg = cfg

	out, _ := cmd.OutOrStdout().(*os.File)
	useColor, err := cliutil.UseColor(cfg.Output.Color, out)
	if err != nil {
		return err
	}
	a.styler = cliutil.NewStyler(useColor)

	log, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.log = log
	return nil
}

// newLogger builds a development logger at debug level when verbose is set,
// otherwise a production logger that only reports warnings and errors.
// Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if verbose {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading so that version works with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			cliutil.Writef(cmd.OutOrStdout(), "speclint %s (commit %s, built %s, %s)\n",
				speclint.Version(), speclint.Commit(), speclint.BuildTime(), speclint.GoVersion())
		},
	}
}
