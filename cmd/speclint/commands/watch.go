package commands

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erraggy/speclint/internal/cliutil"
	"github.com/erraggy/speclint/internal/watch"
)

// watchFlags contains flags for the watch command
type watchFlags struct {
	analyzeFlags
	debounce time.Duration
}

func newWatchCommand(a *app) *cobra.Command {
	flags := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch [flags] <file>...",
		Short: "Re-analyze documents whenever they change",
		Long: `Watch analyzes each file once, then again every time it is saved, until
interrupted. Bursts of writes within the debounce window trigger a single
analysis.`,
		Example: `  speclint watch openapi.yaml
  speclint watch --debounce 1s --min-severity warn api/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, flags, args)
		},
	}
	cmd.Flags().StringVar(&flags.minSeverity, "min-severity", "", "drop issues below this severity: error, warn or info (default from config)")
	cmd.Flags().StringSliceVar(&flags.disableRules, "disable-rule", nil, "rule ID to drop from the output (repeatable)")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "quiet period before re-analyzing (default from config)")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, flags *watchFlags, args []string) error {
	for _, p := range args {
		if p == StdinFilePath {
			return fmt.Errorf("watch cannot read from stdin")
		}
	}
	opts, err := a.analyzeOptions(&flags.analyzeFlags)
	if err != nil {
		return err
	}
	delay := a.cfg.Watch.Debounce
	if flags.debounce > 0 {
		delay = flags.debounce
	}

	// Events carry absolute paths; print the name the user gave.
	names := make(map[string]string, len(args))
	for _, p := range args {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		names[abs] = p
	}

	var mu sync.Mutex
	out := cmd.OutOrStdout()
	report := func(path string) {
		r, err := analyzeOne(nil, path, opts)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			cliutil.Writef(cmd.ErrOrStderr(), "%s\n", a.styler.Error(err.Error()))
			return
		}
		cliutil.WriteIssues(out, a.styler, r.File, r.Issues)
	}

	for _, p := range args {
		report(p)
	}

	w, err := watch.New(args, delay, a.engineLogger())
	if err != nil {
		return err
	}
	a.log.Info("watching", zap.Strings("files", args), zap.Duration("debounce", delay))
	cliutil.Writef(cmd.ErrOrStderr(), "%s\n", a.styler.Dim("Watching for changes (Ctrl+C to stop)"))

	return w.Run(commandContext(cmd), func(path string) {
		name, ok := names[filepath.Clean(path)]
		if !ok {
			name = path
		}
		a.log.Debug("file changed", zap.String("file", name))
		report(name)
	})
}
