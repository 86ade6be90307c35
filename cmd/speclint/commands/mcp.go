package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erraggy/speclint/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve analyze, fix and diff as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout. The server exposes
the analyze, fix and diff tools. Diagnostics are written to stderr.

Environment variables prefixed with SPECLINT_MCP_ tune input limits, URL
fetching and caching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return mcpserver.Run(commandContext(cmd), mcpserver.Options{
				MaxInputSize: a.cfg.MCP.MaxInputSize,
				Logger:       l,
			})
		},
	}
}
