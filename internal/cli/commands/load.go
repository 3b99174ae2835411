package commands

import (
	"errors"

	"github.com/docfinder/docfinder/internal/loader"
	"github.com/spf13/cobra"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load doctor CSV files into the doctors relation",
		Long: `Reconcile every CSV file in the input directory onto the canonical doctor
schema and replace the doctors relation in the destination database.

Columns are matched by known synonyms (for example "Doctor Name" or
"Speciality"); attributes a file does not provide get defaults. A file that
cannot be parsed is reported and skipped. When no file yields data the
destination is left untouched.`,
		Example: `  # Load ./data/*.csv into ./backend/doctors.db
  docfinder load

  # Load from a different directory into a different database
  docfinder load --input ./exports --db ./out/doctors.db

  # Machine-readable report
  docfinder load --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd)
		},
	}

	return cmd
}

func runLoad(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	l := loader.New(loader.Config{
		InputDir:  cc.Cfg.InputDir,
		Pattern:   cc.Cfg.Pattern,
		Database:  cc.Cfg.DatabasePath,
		StoreType: cc.Cfg.Store,
		Logger:    cc.Logger,
	})

	result, err := l.Run(cmd.Context())
	if result == nil {
		return err
	}

	var persistErr *loader.PersistenceError
	switch {
	case err == nil, loader.IsNoValidData(err), errors.As(err, &persistErr):
	default:
		return err
	}

	report := newLoadReport(cc.Cfg.InputDir, cc.Cfg.DatabasePath, result, err)
	if cc.JSON() {
		if rerr := renderJSON(cc.Out, report); rerr != nil {
			return rerr
		}
	} else {
		renderLoadText(cc.Out, report)
	}

	if loader.IsNoValidData(err) {
		return nil
	}
	return err
}
