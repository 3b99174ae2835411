package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display docfinder version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docfinder v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commit: %s, built: %s\n", commit, buildDate)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Doctor directory loader and symptom triage")
		},
	}
}
