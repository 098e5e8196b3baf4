package core

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// bytesPerGiB is the divisor for FileReport.SizeGiB (binary gibibytes).
const bytesPerGiB = 1 << 30

// ColumnProfile describes one column of a profiled table.
type ColumnProfile struct {
	Name     string        `json:"name" yaml:"name"`
	Index    int           `json:"index" yaml:"index"`
	MaxWidth int           `json:"max_width" yaml:"max_width"`
	Type     PrimitiveType `json:"type" yaml:"type"`
	Category Category      `json:"category" yaml:"category"`
	Stats    Summary       `json:"stats" yaml:"stats"`
}

// FileReport is the result of profiling one file. It is built once and not
// modified afterwards.
type FileReport struct {
	Path       string          `json:"path" yaml:"path"`
	SizeBytes  int64           `json:"size_bytes" yaml:"size_bytes"`
	SizeGiB    float64         `json:"size_gib" yaml:"size_gib"`
	NumRows    int             `json:"num_rows" yaml:"num_rows"`
	NumColumns int             `json:"num_columns" yaml:"num_columns"`
	Columns    []ColumnProfile `json:"columns" yaml:"columns"`
}

// Column returns the profile of the named column.
func (r *FileReport) Column(name string) (ColumnProfile, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// WriteText writes the plain-text console report: size, counts, widths,
// the statistics table, types and categories.
func (r *FileReport) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "File size: %.2f GB\n", r.SizeGiB)
	fmt.Fprintf(&b, "\nNumber of rows: %d\n", r.NumRows)
	fmt.Fprintf(&b, "\nNumber of columns: %d\n", r.NumColumns)

	b.WriteString("\nColumn(s) max width:\n")
	for i, c := range r.Columns {
		fmt.Fprintf(&b, "Column %d: %d\n", i, c.MaxWidth)
	}

	b.WriteString("\nColumn(s) description: \n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, c := range r.Columns {
		fmt.Fprintf(tw, "\t%s", c.Name)
	}
	fmt.Fprint(tw, "\t\n")
	for i, name := range StatNames {
		fmt.Fprint(tw, name)
		for _, c := range r.Columns {
			fmt.Fprintf(tw, "\t%s", c.Stats.Values()[i])
		}
		fmt.Fprint(tw, "\t\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b.WriteString("\nColumn data types:\n")
	for i, c := range r.Columns {
		fmt.Fprintf(&b, "Column %d: %s\n", i, c.Type)
	}

	b.WriteString("\nColumn categories:\n")
	for i, c := range r.Columns {
		fmt.Fprintf(&b, "Column %d: %s\n", i, c.Category)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns the WriteText report as a string.
func (r *FileReport) Text() string {
	var b strings.Builder
	_ = r.WriteText(&b)
	return b.String()
}
