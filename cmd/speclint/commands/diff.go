package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/speclint/differ"
	"github.com/erraggy/speclint/internal/cliutil"
)

// Diff modes
const (
	DiffModeImpact  = "impact"
	DiffModeLines   = "lines"
	DiffModeUnified = "unified"
)

// diffFlags contains flags for the diff command
type diffFlags struct {
	mode    string
	context int
}

func newDiffCommand(a *app) *cobra.Command {
	flags := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "diff [flags] <before> <after>",
		Short: "Compare two snapshots of an API document",
		Long: `Diff compares two documents. The default impact mode lists endpoints that
were added or modified, with one line per changed property. The lines mode
prints every line prefixed with +, - or a space, and the unified mode prints
a unified diff.

Either argument may be - to read from stdin.`,
		Example: `  speclint diff openapi.yaml openapi.fixed.yaml
  speclint fix api.yaml | speclint diff api.yaml -
  speclint diff --mode unified --context 5 old.yaml new.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiff(cmd, flags, args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&flags.mode, "mode", DiffModeImpact, "output mode: impact, lines or unified")
	cmd.Flags().IntVar(&flags.context, "context", differ.DefaultContext, "context lines in unified mode")
	return cmd
}

func (a *app) runDiff(cmd *cobra.Command, flags *diffFlags, beforePath, afterPath string) error {
	switch flags.mode {
	case DiffModeImpact, DiffModeLines, DiffModeUnified:
	default:
		return fmt.Errorf("invalid mode '%s'. Valid modes: %s, %s, %s", flags.mode, DiffModeImpact, DiffModeLines, DiffModeUnified)
	}
	if beforePath == StdinFilePath && afterPath == StdinFilePath {
		return fmt.Errorf("only one side can be read from stdin")
	}

	before, err := readSpec(cmd.InOrStdin(), beforePath)
	if err != nil {
		return err
	}
	after, err := readSpec(cmd.InOrStdin(), afterPath)
	if err != nil {
		return err
	}

	res, err := differ.DiffWithOptions(
		differ.WithBeforeContent(before),
		differ.WithAfterContent(after),
		differ.WithContext(flags.context),
		differ.WithLogger(a.engineLogger()),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.cfg.Output.Format == FormatJSON {
		return OutputStructured(out, res, FormatJSON)
	}

	switch flags.mode {
	case DiffModeLines:
		a.writeLines(out, res.Lines)
	case DiffModeUnified:
		if res.HasChanges() {
			// Relabel with the argument names.
			d := differ.New()
			d.Context = flags.context
			d.BeforeName = FormatSpecPath(beforePath)
			d.AfterName = FormatSpecPath(afterPath)
			text, err := d.Unified(before, after)
			if err != nil {
				return err
			}
			cliutil.Writef(out, "%s", text)
		}
	default:
		a.writeImpact(out, res.Impact)
	}
	return nil
}

func (a *app) writeLines(w io.Writer, lines []differ.LineChange) {
	for _, l := range lines {
		text := l.String()
		switch l.Op {
		case differ.OpAdd:
			text = a.styler.Added(text)
		case differ.OpRemove:
			text = a.styler.Removed(text)
		}
		cliutil.Writef(w, "%s\n", text)
	}
}

func (a *app) writeImpact(w io.Writer, imp *differ.Impact) {
	if imp.IsEmpty() {
		cliutil.Writef(w, "No endpoint changes\n")
		return
	}
	for _, r := range imp.Endpoints {
		header := r.String()
		if r.Type == differ.ChangeTypeAdded {
			header = a.styler.Added(header)
		}
		cliutil.Writef(w, "%s\n", header)
		for _, c := range r.Changes {
			cliutil.Writef(w, "    %s\n", c.Describe())
		}
	}
	for _, s := range imp.Schemas {
		cliutil.Writef(w, "schema %s.%s\n", s.Schema, s.Field)
		for _, c := range s.Changes {
			cliutil.Writef(w, "    %s\n", c.Describe())
		}
	}
	added, modified := imp.Count()
	cliutil.Writef(w, "%s\n", a.styler.Dim(fmt.Sprintf("%d added, %d modified endpoints, %d schema fields", added, modified, len(imp.Schemas))))
}
