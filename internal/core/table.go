package core

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JonMunkholm/csvprofile/internal/dialect"
	"golang.org/x/text/encoding"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 1024

// Table is a parsed CSV file: a header row and data rows of raw cell text.
// Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of header fields.
func (t *Table) NumColumns() int {
	return len(t.Header)
}

// Column returns a copy of the cells of column i in row order.
func (t *Table) Column(i int) []string {
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		col[r] = row[i]
	}
	return col
}

// ReadOptions controls how raw bytes become a Table.
type ReadOptions struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// Encoding decodes the input to UTF-8; nil reads it as UTF-8.
	Encoding encoding.Encoding
}

// LoadTable opens path and parses it with ReadTable.
// A missing or unreadable path yields *NotFoundError.
func LoadTable(ctx context.Context, path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	return ReadTable(ctx, f, path, opts)
}

// ReadTable parses header-delimited text from r. The first record is the
// header; every following record must have the same number of fields.
// name is only used in error messages.
func ReadTable(ctx context.Context, r io.Reader, name string, opts ReadOptions) (*Table, error) {
	cr := csv.NewReader(newSourceReader(r, opts.Encoding))
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	// 0 pins the field count to the header's.
	cr.FieldsPerRecord = 0
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &EmptyTableError{Path: name}
		}
		return nil, toParseError(name, err)
	}
	if len(header) == 0 {
		return nil, &EmptyTableError{Path: name}
	}

	t := &Table{Header: dedupeHeader(header)}
	for {
		if len(t.Rows)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, toParseError(name, err)
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// toParseError converts a csv reader failure into *ParseError, keeping the
// line number when the reader reported one.
func toParseError(name string, err error) *ParseError {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Path: name, Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Path: name, Err: err}
}

// dedupeHeader names blank columns "Unnamed: <index>" and renames repeated
// names to name.1, name.2, ... so every column can be addressed by name.
func dedupeHeader(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		names[i] = h
		taken[h] = true
	}

	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, h := range names {
		n, dup := seen[h]
		if !dup {
			seen[h] = 0
			out[i] = h
			continue
		}
		var name string
		for {
			n++
			name = h + "." + strconv.Itoa(n)
			if !taken[name] {
				break
			}
		}
		seen[h] = n
		taken[name] = true
		out[i] = name
	}
	return out
}

// DelimiterFor picks the field delimiter for path: tab for .tsv files,
// comma otherwise.
func DelimiterFor(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ParseDelimiter converts a user-supplied delimiter name to a rune. An
// empty name returns 0, leaving the choice to DelimiterFor.
func ParseDelimiter(s string) (rune, error) {
	return dialect.Delimiter(s)
}
