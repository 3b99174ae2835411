package commands

import (
	"io"
	"log/slog"

	"github.com/docfinder/docfinder/internal/cli/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// NewCommandContext collects the config and logger stored on the command
// context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    config.FromContext(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
	}
}

// JSON reports whether JSON output was requested.
func (c *CommandContext) JSON() bool {
	return c.Cfg.OutputFormat == "json"
}
