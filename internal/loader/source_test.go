package loader

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docfinder/docfinder/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   [][]string
		wantErr    bool
	}{
		{
			name:       "header and rows",
			input:      "Doctor Name,Speciality\nDr. A,Cardiology\nDr. B,Neurology\n",
			wantHeader: []string{"Doctor Name", "Speciality"},
			wantRows:   [][]string{{"Dr. A", "Cardiology"}, {"Dr. B", "Neurology"}},
		},
		{
			name:       "utf-8 bom is stripped",
			input:      "\ufeffName,Hospital\nDr. A,City\n",
			wantHeader: []string{"Name", "Hospital"},
			wantRows:   [][]string{{"Dr. A", "City"}},
		},
		{
			name:       "header cells are trimmed",
			input:      " Name , Phone\nDr. A,123\n",
			wantHeader: []string{"Name", "Phone"},
			wantRows:   [][]string{{"Dr. A", "123"}},
		},
		{
			name:       "short rows are padded",
			input:      "Name,Phone,Rating\nDr. A\n",
			wantHeader: []string{"Name", "Phone", "Rating"},
			wantRows:   [][]string{{"Dr. A", "", ""}},
		},
		{
			name:       "quoted commas",
			input:      "Name,languages\nDr. A,\"Bengali, English\"\n",
			wantHeader: []string{"Name", "languages"},
			wantRows:   [][]string{{"Dr. A", "Bengali, English"}},
		},
		{
			name:       "header only",
			input:      "Name,Phone\n",
			wantHeader: []string{"Name", "Phone"},
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: true,
		},
		{
			name:    "long row",
			input:   "Name\nDr. A,extra\n",
			wantErr: true,
		},
		{
			name:    "invalid utf-8",
			input:   "Name\nDr. \xff\xfe\xfd\n",
			wantErr: true,
		},
		{
			name:       "bare quotes inside a field",
			input:      "Name,Hospital\nDr. Abdul \"Babu\" Karim,City Hospital\nDr. B,X\n",
			wantHeader: []string{"Name", "Hospital"},
			wantRows:   [][]string{{"Dr. Abdul \"Babu\" Karim", "City Hospital"}, {"Dr. B", "X"}},
		},
		{
			name:       "escaped quotes inside a quoted field",
			input:      "Name,Hospital\n\"Dr. \"\"Babu\"\" Karim\",\"City, North\"\n",
			wantHeader: []string{"Name", "Hospital"},
			wantRows:   [][]string{{"Dr. \"Babu\" Karim", "City, North"}},
		},
		{
			name:    "unterminated quote",
			input:   "Name\n\"Dr. A\n",
			wantErr: true,
		},
		{
			name:    "unterminated quote before more rows",
			input:   "Name,Hospital\n\"Dr. A,City\nDr. B,X\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parseSource(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, table.Header)
			assert.Equal(t, tt.wantRows, table.Rows)
		})
	}
}

func TestOpenQuoteLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantOpen bool
	}{
		{name: "no quotes", input: "a,b\nc,d\n"},
		{name: "closed quote", input: "a,\"b\nc\"\nd,e\n"},
		{name: "bare quote mid field", input: "a,b \"c\" d\n"},
		{name: "empty quoted field at end", input: "a,\"\""},
		{name: "open on line 3", input: "a\nb\n\"c\nd\n", wantLine: 3, wantOpen: true},
		{name: "lazy quote inside quoted field", input: "\"a \"b\" c\n", wantLine: 1, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, open := openQuoteLine([]byte(tt.input))
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantLine, line)
		})
	}
}

func TestReadSource_ErrorsCarryPath(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"empty.csv": ""})

	for _, path := range []string{
		filepath.Join(dir, "empty.csv"),
		filepath.Join(dir, "missing.csv"),
	} {
		_, err := ReadSource(path)
		require.Error(t, err)

		var parseErr *SourceParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.Path)
		assert.Contains(t, err.Error(), path)
	}
}

func TestReadSource_SetsPath(t *testing.T) {
	dir := testutil.WriteFiles(t, t.TempDir(), map[string]string{"a.csv": "Name\nDr. A\n"})

	table, err := ReadSource(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.csv"), table.Path)
	assert.Len(t, table.Rows, 1)
}
