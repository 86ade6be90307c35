package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erraggy/speclint/differ"
	"github.com/erraggy/speclint/fixer"
	"github.com/erraggy/speclint/internal/cliutil"
)

// fixFlags contains flags for the fix command
type fixFlags struct {
	only   []int
	output string
	diff   bool
	strict bool
	quiet  bool
}

func newFixCommand(a *app) *cobra.Command {
	flags := &fixFlags{}
	cmd := &cobra.Command{
		Use:   "fix [flags] <file|->",
		Short: "Repair fixable issues in an API document",
		Long: `Fix repairs every fixable issue and prints the fixed document. Use --only
with issue indices from 'speclint analyze --format json' to fix a subset;
paths are always cleaned.

A document with a structural defect, such as a method listed twice under
one path, is returned unchanged.`,
		Example: `  speclint fix openapi.yaml -o openapi.fixed.yaml
  speclint fix --only 0,3 openapi.yaml
  speclint fix --diff openapi.yaml
  cat api.yaml | speclint fix -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFix(cmd, flags, args[0])
		},
	}
	cmd.Flags().IntSliceVar(&flags.only, "only", nil, "fix only the issues at these indices")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the fixed document to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff instead of the fixed document")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when a structural defect blocks fixing")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the summary on stderr")
	return cmd
}

func (a *app) runFix(cmd *cobra.Command, flags *fixFlags, path string) error {
	text, err := readSpec(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	opts := []fixer.Option{
		fixer.WithContent(text),
		fixer.WithStrict(flags.strict),
		fixer.WithLogger(a.engineLogger()),
	}
	if cmd.Flags().Changed("only") {
		opts = append(opts, fixer.WithSelection(flags.only...))
	}
	res, err := fixer.FixWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("fixing %s: %w", FormatSpecPath(path), err)
	}
	a.log.Debug("fixed", zap.String("file", FormatSpecPath(path)), zap.Int("fixes", len(res.Fixes)))

	stderr := cmd.ErrOrStderr()
	if !flags.quiet {
		a.writeFixSummary(cmd, path, res)
	}

	content := res.Content
	if flags.diff {
		d := differ.New()
		d.Logger = a.engineLogger()
		d.BeforeName = FormatSpecPath(path)
		d.AfterName = FormatSpecPath(path) + " (fixed)"
		content, err = d.Unified(text, res.Content)
		if err != nil {
			return err
		}
	}

	if flags.output == "" {
		cliutil.Writef(cmd.OutOrStdout(), "%s", content)
		return nil
	}
	if err := writeOutput(stderr, flags.output, content, []string{path}); err != nil {
		return err
	}
	if !flags.quiet {
		cliutil.Writef(stderr, "Wrote %s\n", flags.output)
	}
	return nil
}

func (a *app) writeFixSummary(cmd *cobra.Command, path string, res *fixer.FixResult) {
	stderr := cmd.ErrOrStderr()
	if res.Refused {
		cliutil.Writef(stderr, "%s\n", a.styler.Warning(
			fmt.Sprintf("%s: structural defect, document left unchanged", FormatSpecPath(path))))
		return
	}
	for _, f := range res.Fixes {
		cliutil.Writef(stderr, "  %s %s: %s\n", a.styler.Dim(string(f.Type)), f.Target, f.Description)
	}
	cliutil.Writef(stderr, "%s: %d fixes (%d fields, %d paths, %d operations)\n",
		FormatSpecPath(path), len(res.Fixes),
		res.Stats.FieldsFixed, res.Stats.PathsFixed, res.Stats.OperationsFixed)
}
