package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docfinder/docfinder/internal/loader"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// loadReport is the rendered outcome of a load run.
type loadReport struct {
	InputDir    string          `json:"input_dir"`
	Database    string          `json:"database"`
	RunID       string          `json:"run_id,omitempty"`
	Saved       bool            `json:"saved"`
	NoValidData bool            `json:"no_valid_data,omitempty"`
	Sources     []sourceInfo    `json:"sources"`
	Summary     *loader.Summary `json:"summary,omitempty"`
	Error       string          `json:"error,omitempty"`
}

type sourceInfo struct {
	File  string `json:"file"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

func newLoadReport(inputDir, database string, result *loader.Result, err error) *loadReport {
	r := &loadReport{
		InputDir: inputDir,
		Database: database,
		RunID:    result.RunID,
		Saved:    result.Saved,
		Sources:  make([]sourceInfo, 0, len(result.Sources)),
	}
	for _, s := range result.Sources {
		info := sourceInfo{File: filepath.Base(s.Path), Rows: s.Rows}
		if s.Err != nil {
			info.Error = s.Err.Error()
		}
		r.Sources = append(r.Sources, info)
	}
	if len(result.Doctors) > 0 || result.Saved {
		summary := result.Summary
		r.Summary = &summary
	}
	switch {
	case loader.IsNoValidData(err):
		r.NoValidData = true
	case err != nil:
		r.Error = err.Error()
	}
	return r
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderLoadText(w io.Writer, r *loadReport) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("Doctor sources"))
	renderSourcesTable(w, r.Sources)
	_, _ = fmt.Fprintln(w)

	if r.NoValidData {
		_, _ = fmt.Fprintln(w, warnStyle.Render("No valid doctor data found in CSV files in "+r.InputDir))
		return
	}

	if r.Error != "" {
		_, _ = fmt.Fprintln(w, errorStyle.Render("Error saving database: "+r.Error))
		if r.Summary != nil {
			_, _ = fmt.Fprintf(w, "%d doctors were reconciled but not saved\n", r.Summary.Rows)
		}
		return
	}

	_, _ = fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Successfully processed %d doctors", r.Summary.Rows)))
	_, _ = fmt.Fprintf(w, "Database saved to %s\n", r.Database)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, headerStyle.Render("Data Summary"))
	_, _ = fmt.Fprintf(w, "Specializations: %s\n", strings.Join(r.Summary.Specializations, ", "))
	_, _ = fmt.Fprintf(w, "Districts: %s\n", strings.Join(r.Summary.Districts, ", "))
	_, _ = fmt.Fprintf(w, "Average Rating: %.1f\n", r.Summary.AverageRating)
}

func renderSourcesTable(w io.Writer, sources []sourceInfo) {
	if len(sources) == 0 {
		_, _ = fmt.Fprintln(w, "(no source files)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Rows", "Status"})
	for _, s := range sources {
		status := "ok"
		if s.Error != "" {
			status = "skipped: " + s.Error
		}
		t.AppendRow(table.Row{s.File, s.Rows, status})
	}
	t.Render()
}
