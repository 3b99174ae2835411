package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/docfinder/docfinder/internal/cli/config"
	"github.com/docfinder/docfinder/internal/loader"
	"github.com/docfinder/docfinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dhakaCSV = "Doctor Name,Speciality,Hospital,District,Rating\n" +
		"Dr. Rahman,Cardiology,Square Hospital,Dhaka,4.8\n" +
		"Dr. Akter,Neurology,Labaid,Dhaka,\n"
	sylhetCSV = "Name,Department,Clinic,City\n" +
		"Dr. Hossain,Pediatrics,Sylhet Clinic,Sylhet\n"
)

// executeLoad runs the load command with cfg stored on its context.
func executeLoad(t *testing.T, cfg *config.Config) (string, error) {
	t.Helper()
	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))

	cmd := NewLoadCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	cmd.SetContext(ctx)

	err := cmd.Execute()
	return buf.String(), err
}

func testLoadConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.InputDir = filepath.Join(dir, "data")
	cfg.DatabasePath = filepath.Join(dir, "backend", "doctors.db")
	return cfg
}

func TestLoad_Text(t *testing.T) {
	cfg := testLoadConfig(t)
	testutil.WriteFiles(t, cfg.InputDir, map[string]string{
		"dhaka.csv":  dhakaCSV,
		"sylhet.csv": sylhetCSV,
		"broken.csv": "Name,Hospital\n\"unterminated,x\n",
	})

	out, err := executeLoad(t, cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Doctor sources")
	assert.Contains(t, out, "broken.csv")
	assert.Contains(t, out, "skipped")
	assert.Contains(t, out, "Successfully processed 3 doctors")
	assert.Contains(t, out, "Database saved to "+cfg.DatabasePath)
	assert.Contains(t, out, "Specializations: Cardiology, Neurology, Pediatrics")
	assert.Contains(t, out, "Districts: Dhaka, Sylhet")
	assert.Contains(t, out, "Average Rating: 4.3")

	_, statErr := os.Stat(cfg.DatabasePath)
	assert.NoError(t, statErr)
}

func TestLoad_JSON(t *testing.T) {
	cfg := testLoadConfig(t)
	cfg.OutputFormat = "json"
	testutil.WriteFiles(t, cfg.InputDir, map[string]string{"dhaka.csv": dhakaCSV})

	out, err := executeLoad(t, cfg)
	require.NoError(t, err)

	var report struct {
		Saved   bool   `json:"saved"`
		RunID   string `json:"run_id"`
		Sources []struct {
			File string `json:"file"`
			Rows int    `json:"rows"`
		} `json:"sources"`
		Summary loader.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Saved)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Sources, 1)
	assert.Equal(t, "dhaka.csv", report.Sources[0].File)
	assert.Equal(t, 2, report.Sources[0].Rows)
	assert.Equal(t, 2, report.Summary.Rows)
	assert.Equal(t, []string{"Dhaka"}, report.Summary.Districts)
}

func TestLoad_NoValidData(t *testing.T) {
	cfg := testLoadConfig(t)

	out, err := executeLoad(t, cfg)
	require.NoError(t, err, "no valid data is not a failure")
	assert.Contains(t, out, "No valid doctor data found")

	_, statErr := os.Stat(cfg.DatabasePath)
	assert.True(t, os.IsNotExist(statErr), "destination must not be created")
}

func TestLoad_PersistenceError(t *testing.T) {
	cfg := testLoadConfig(t)
	testutil.WriteFiles(t, cfg.InputDir, map[string]string{"dhaka.csv": dhakaCSV})
	// A regular file where the destination directory should be.
	blocker := filepath.Dir(cfg.DatabasePath)
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	out, err := executeLoad(t, cfg)
	require.Error(t, err)

	var persistErr *loader.PersistenceError
	assert.ErrorAs(t, err, &persistErr)
	assert.Contains(t, out, "Error saving database")
	assert.Contains(t, out, "2 doctors were reconciled but not saved")
}
