package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errNoHeader = errors.New("no header row")

// SourceTable is one parsed source file: its header and raw cells.
// Every row has exactly len(Header) cells.
type SourceTable struct {
	Path   string
	Header []string
	Rows   [][]string
}

// ReadSource parses the CSV file at path. Any failure is returned as a
// *SourceParseError.
func ReadSource(path string) (*SourceTable, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from Discover
	if err != nil {
		return nil, &SourceParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	table, err := parseSource(f)
	if err != nil {
		return nil, &SourceParseError{Path: path, Err: err}
	}
	table.Path = path
	return table, nil
}

// parseSource reads CSV from r. A leading BOM is honored (UTF-8 BOMs are
// stripped, UTF-16 input is decoded); everything else must be valid UTF-8.
// Bare quotes inside a field are kept as text, but a quoted field that is
// never closed is an error. Short rows are padded with empty cells, long
// rows are an error.
func parseSource(r io.Reader) (*SourceTable, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, err
	}
	if line, open := openQuoteLine(data); open {
		return nil, fmt.Errorf("line %d: quoted field is never closed: %w", line, csv.ErrQuote)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, err
	}
	for i, col := range header {
		if !utf8.ValidString(col) {
			return nil, fmt.Errorf("header column %d is not valid UTF-8", i+1)
		}
		header[i] = strings.TrimSpace(col)
	}

	table := &SourceTable{Header: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		if len(record) > len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		for _, cell := range record {
			if !utf8.ValidString(cell) {
				return nil, fmt.Errorf("line %d: invalid UTF-8", line)
			}
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// openQuoteLine finds a quoted field that runs to the end of data and
// returns the line it starts on. Quote handling matches csv.Reader with
// LazyQuotes: "" is an escaped quote and a quote not followed by a
// separator or line end stays part of the field.
func openQuoteLine(data []byte) (int, bool) {
	line := 1
	fieldStart := true
	for i := 0; i < len(data); i++ {
		c := data[i]
		if fieldStart && c == '"' {
			start := line
			closed := false
			for i++; i < len(data); i++ {
				switch data[i] {
				case '\n':
					line++
				case '"':
					if i+1 < len(data) && data[i+1] == '"' {
						i++
						continue
					}
					if i+1 == len(data) || strings.IndexByte(",\r\n", data[i+1]) >= 0 {
						closed = true
					}
				}
				if closed {
					break
				}
			}
			if !closed {
				return start, true
			}
			fieldStart = false
			continue
		}

		switch c {
		case ',':
			fieldStart = true
		case '\n':
			line++
			fieldStart = true
		default:
			fieldStart = false
		}
	}
	return 0, false
}
