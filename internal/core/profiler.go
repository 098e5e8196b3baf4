package core

import (
	"context"
	"errors"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// Profiler turns a CSV file into a FileReport. It keeps no state between
// calls, so one Profiler may be shared by concurrent callers.
type Profiler struct {
	// Comma is the field delimiter. Zero picks one from the file extension
	// (tab for .tsv, comma otherwise).
	Comma rune

	// Encoding decodes non-UTF-8 files. Nil reads files as UTF-8.
	Encoding encoding.Encoding
}

// NewProfiler returns a Profiler using delimiter comma (0 to auto-pick)
// and UTF-8 input.
func NewProfiler(comma rune) *Profiler {
	return &Profiler{Comma: comma}
}

// Profile reads path and builds its report.
//
// It returns *NotFoundError when path is missing or unreadable,
// *ParseError when the content is not valid CSV or a row's field count
// differs from the header's, and *EmptyTableError when the header has no
// fields.
func (p *Profiler) Profile(path string) (*FileReport, error) {
	return p.ProfileContext(context.Background(), path)
}

// ProfileContext is Profile with a context checked while rows are read.
func (p *Profiler) ProfileContext(ctx context.Context, path string) (*FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: path, Err: errors.New("is a directory")}
	}

	comma := p.Comma
	if comma == 0 {
		comma = DelimiterFor(path)
	}

	table, err := LoadTable(ctx, path, ReadOptions{Comma: comma, Encoding: p.Encoding})
	if err != nil {
		return nil, err
	}

	report := &FileReport{
		Path:       path,
		SizeBytes:  info.Size(),
		SizeGiB:    float64(info.Size()) / bytesPerGiB,
		NumRows:    table.NumRows(),
		NumColumns: table.NumColumns(),
		Columns:    make([]ColumnProfile, table.NumColumns()),
	}
	for i, name := range table.Header {
		report.Columns[i] = profileColumn(i, name, table.Column(i))
	}

	return report, nil
}

func profileColumn(index int, name string, cells []string) ColumnProfile {
	category, typ := InferColumn(cells)
	return ColumnProfile{
		Name:     name,
		Index:    index,
		MaxWidth: MaxWidth(cells),
		Type:     typ,
		Category: category,
		Stats:    Describe(NumericValues(cells)),
	}
}

// MaxWidth returns the length in runes of the longest cell. Cells are
// measured as written in the file, so a placeholder such as "NA" counts
// its own length and an empty cell counts 0.
func MaxWidth(cells []string) int {
	width := 0
	for _, cell := range cells {
		if n := utf8.RuneCountInString(cell); n > width {
			width = n
		}
	}
	return width
}
