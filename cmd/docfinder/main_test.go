// Package main provides tests for the docfinder CLI.
package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docfinder/docfinder/internal/cli"
	"github.com/docfinder/docfinder/internal/store"
	"github.com/docfinder/docfinder/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "docfinder") {
		t.Errorf("version output should contain 'docfinder', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	for _, expected := range []string{"load", "analyze", "version", "completion"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestLoadCommand(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFiles(t, filepath.Join(dir, "data"), map[string]string{
		"a.csv": "Dr. Name,Field,Institution,Region,Score\nDr. Karim,Cardiology,NICVD,Dhaka,4.6\n",
		"b.csv": "Doctor,Mobile,Years\nDr. Nahar,01711,12\n",
	})
	db := filepath.Join(dir, "out", "doctors.db")

	output, err := execute(t, "load", "--input", input, "--db", db)
	if err != nil {
		t.Fatalf("load command error = %v\n%s", err, output)
	}
	if !strings.Contains(output, "Successfully processed 2 doctors") {
		t.Errorf("unexpected load output: %s", output)
	}

	st, err := store.Open(context.Background(), store.Config{Path: db})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	doctors, err := st.Doctors(context.Background())
	if err != nil {
		t.Fatalf("failed to read doctors: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(doctors))
	}
	if doctors[1].Name != "Dr. Nahar" || doctors[1].Experience != "12" || doctors[1].Specialization != "General Physician" {
		t.Errorf("unexpected second doctor: %+v", doctors[1])
	}
}

func TestLoadCommand_UnknownStore(t *testing.T) {
	_, err := execute(t, "load", "--store", "parquet")
	if err == nil || !strings.Contains(err.Error(), "unknown store") {
		t.Errorf("expected unknown store error, got %v", err)
	}
}

func TestAnalyzeCommand(t *testing.T) {
	output, err := execute(t, "analyze", "--no-model", "joint pain in the knees")
	if err != nil {
		t.Fatalf("analyze command error = %v", err)
	}
	if !strings.Contains(output, "Orthopedics") {
		t.Errorf("analyze output should contain 'Orthopedics', got: %s", output)
	}
}
