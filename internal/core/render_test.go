package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func sampleReport(t *testing.T) *FileReport {
	t.Helper()
	path := writeFile(t, "sample.csv", "id,when,label\n1,2024-01-02,a\n2,2024-02-03,b\n")
	report, err := NewProfiler(0).Profile(path)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	return report
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"text", FormatText, false},
		{"txt", FormatText, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in, FormatJSON)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	report := sampleReport(t)

	var b strings.Builder
	if err := report.Render(&b, FormatJSON); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded struct {
		NumRows int `json:"num_rows"`
		Columns []struct {
			Name     string            `json:"name"`
			Type     string            `json:"type"`
			Category string            `json:"category"`
			Stats    map[string]string `json:"stats"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, b.String())
	}
	if decoded.NumRows != 2 || len(decoded.Columns) != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded.Columns[0].Type != "integer" || decoded.Columns[1].Category != "date" {
		t.Errorf("columns = %+v", decoded.Columns)
	}
	if decoded.Columns[0].Stats["50%"] != "1.50000" {
		t.Errorf("median = %q, want 1.50000", decoded.Columns[0].Stats["50%"])
	}
}

func TestRender_YAML(t *testing.T) {
	report := sampleReport(t)

	var b strings.Builder
	if err := report.Render(&b, FormatYAML); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded["num_columns"] != 3 {
		t.Errorf("num_columns = %v, want 3", decoded["num_columns"])
	}
	if !strings.Contains(b.String(), "category: alphanumeric") {
		t.Errorf("missing category in:\n%s", b.String())
	}
}

func TestRender_Text(t *testing.T) {
	report := sampleReport(t)

	var b strings.Builder
	if err := report.Render(&b, FormatText); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b.String() != report.Text() {
		t.Error("text rendering differs from WriteText")
	}
}

func TestRender_Unsupported(t *testing.T) {
	report := sampleReport(t)
	err := report.Render(&strings.Builder{}, Format("xml"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Render() error = %v, want ErrUnsupportedFormat", err)
	}
	if MapError(err).Code != "REQ001" {
		t.Errorf("code = %q, want REQ001", MapError(err).Code)
	}
}

func TestFormat_ContentType(t *testing.T) {
	if FormatJSON.ContentType() != "application/json" {
		t.Error("json content type")
	}
	if FormatYAML.ContentType() != "application/yaml" {
		t.Error("yaml content type")
	}
	if !strings.HasPrefix(FormatText.ContentType(), "text/plain") {
		t.Error("text content type")
	}
}
