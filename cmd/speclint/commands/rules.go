package commands

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erraggy/speclint/analyzer"
	"github.com/erraggy/speclint/internal/cliutil"
)

// ruleInfo is one rule as printed in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Fixable     bool   `json:"fixable"`
	Description string `json:"description"`
}

func newRulesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule IDs the analyzer reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := analyzer.Rules()
			out := cmd.OutOrStdout()
			if a.cfg.Output.Format == FormatJSON {
				list := make([]ruleInfo, 0, len(rules))
				for _, r := range rules {
					list = append(list, ruleInfo{ID: r.ID, Fixable: r.Fixable, Description: r.Description})
				}
				return OutputStructured(out, list, FormatJSON)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			cliutil.Writef(tw, "RULE\tFIXABLE\tDESCRIPTION\n")
			for _, r := range rules {
				fixable := "no"
				if r.Fixable {
					fixable = "yes"
				}
				cliutil.Writef(tw, "%s\t%s\t%s\n", r.ID, fixable, r.Description)
			}
			return tw.Flush()
		},
	}
}
