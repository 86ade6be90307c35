package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/cliutil"
	"github.com/erraggy/speclint/internal/issues"
	"github.com/erraggy/speclint/internal/severity"
)

// analyzeFlags contains flags for the analyze command
type analyzeFlags struct {
	minSeverity  string
	disableRules []string
	jobs         int
}

// fileReport is the analysis of one input, as printed in JSON output.
type fileReport struct {
	File    string         `json:"file"`
	Shape   string         `json:"shape"`
	Version string         `json:"version,omitempty"`
	Counts  issues.Counts  `json:"counts"`
	Issues  []issues.Issue `json:"issues"`
}

func newAnalyzeCommand(a *app) *cobra.Command {
	flags := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [flags] <file|->...",
		Short: "Report rule violations in API documents",
		Long: `Analyze checks each document against the house rules and prints one line
per issue. Several files are analyzed concurrently; output keeps the order
of the arguments.

Exit Codes:
  0    No error-severity issues
  1    An error-severity issue was found, or a file could not be read`,
		Example: `  speclint analyze openapi.yaml
  speclint analyze --min-severity warn api/*.yaml
  speclint analyze --disable-rule string-length --format json openapi.yaml
  cat openapi.yaml | speclint analyze -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.minSeverity, "min-severity", "", "drop issues below this severity: error, warn or info (default from config)")
	cmd.Flags().StringSliceVar(&flags.disableRules, "disable-rule", nil, "rule ID to drop from the output (repeatable)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files analyzed concurrently")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, flags *analyzeFlags, args []string) error {
	opts, err := a.analyzeOptions(flags)
	if err != nil {
		return err
	}

	reports, err := a.analyzeFiles(cmd, args, opts, flags.jobs)
	if err != nil {
		return err
	}

	failed := false
	for _, r := range reports {
		if r.Counts.Errors > 0 {
			failed = true
		}
	}

	out := cmd.OutOrStdout()
	if a.cfg.Output.Format == FormatJSON {
		if err := OutputStructured(out, reports, FormatJSON); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			cliutil.WriteIssues(out, a.styler, r.File, r.Issues)
		}
	}

	if failed {
		return ErrIssuesFound
	}
	return nil
}

// analyzeOptions merges flags over config into analyzer options.
func (a *app) analyzeOptions(flags *analyzeFlags) ([]analyzer.Option, error) {
	minText := a.cfg.Analyze.MinSeverity
	if flags.minSeverity != "" {
		minText = flags.minSeverity
	}
	floor, err := severity.Parse(minText)
	if err != nil {
		return nil, fmt.Errorf("invalid --min-severity: %w", err)
	}

	disabled := append(append([]string(nil), a.cfg.Analyze.DisabledRules...), flags.disableRules...)
	opts := []analyzer.Option{
		analyzer.WithMinSeverity(floor),
		analyzer.WithLogger(a.engineLogger()),
	}
	if len(disabled) > 0 {
		opts = append(opts, analyzer.WithDisabledRules(disabled...))
	}
	return opts, nil
}

// analyzeFiles analyzes each path concurrently, at most jobs at a time.
// Reports come back in argument order.
func (a *app) analyzeFiles(cmd *cobra.Command, paths []string, opts []analyzer.Option, jobs int) ([]fileReport, error) {
	if jobs < 1 {
		jobs = 1
	}
	stdin := cmd.InOrStdin()
	reports := make([]fileReport, len(paths))

	g, gctx := errgroup.WithContext(commandContext(cmd))
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := analyzeOne(stdin, path, opts)
			if err != nil {
				return err
			}
			reports[i] = r
			a.log.Debug("analyzed", zap.String("file", FormatSpecPath(path)), zap.Int("issues", len(r.Issues)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeOne(stdin io.Reader, path string, opts []analyzer.Option) (fileReport, error) {
	source := analyzer.WithFilePath(path)
	if path == StdinFilePath {
		text, err := readSpec(stdin, path)
		if err != nil {
			return fileReport{}, err
		}
		source = analyzer.WithContent(text)
	}

	res, err := analyzer.AnalyzeWithOptions(append([]analyzer.Option{source}, opts...)...)
	if err != nil {
		return fileReport{}, fmt.Errorf("analyzing %s: %w", FormatSpecPath(path), err)
	}
	list := res.Issues
	if list == nil {
		list = []issues.Issue{}
	}
	return fileReport{
		File:    FormatSpecPath(path),
		Shape:   res.Shape.String(),
		Version: res.Version,
		Counts:  res.Counts,
		Issues:  list,
	}, nil
}
