package core

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestSourceReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "a,b\n1,2\n", "a,b\n1,2\n"},
		{"bom stripped", "\xEF\xBB\xBFa,b\n", "a,b\n"},
		{"bom only once", "\xEF\xBB\xBF\xEF\xBB\xBFa", "\uFEFFa"},
		{"invalid byte replaced", "caf\xe9\n", "caf?\n"},
		{"multibyte kept", "日本,ü\n", "日本,ü\n"},
		{"truncated sequence", "x\xe6\x97", "x??"},
		{"short input", "ab", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newSourceReader(strings.NewReader(tt.input), nil))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceReader_SmallReads(t *testing.T) {
	input := "名前,値\n"
	r := iotest.OneByteReader(newSourceReader(strings.NewReader(input), nil))

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestParseEncoding(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8"} {
		enc, err := ParseEncoding(name)
		if err != nil || enc != nil {
			t.Errorf("ParseEncoding(%q) = %v, %v; want nil, nil", name, enc, err)
		}
	}
	for _, name := range []string{"latin1", "windows-1252", "utf-16", "UTF-16BE"} {
		if enc, err := ParseEncoding(name); err != nil || enc == nil {
			t.Errorf("ParseEncoding(%q) = %v, %v; want decoder", name, enc, err)
		}
	}
	if _, err := ParseEncoding("ebcdic"); err == nil {
		t.Error("ParseEncoding(ebcdic) expected error")
	}
}

func TestSourceReader_Decodes(t *testing.T) {
	tests := []struct {
		name  string
		enc   string
		input string
		want  string
	}{
		{"latin1", "latin1", "caf\xe9", "café"},
		{"windows-1252 euro", "windows-1252", "\x80", "€"},
		{"utf-16 with bom", "utf-16", "\xff\xfea\x00,\x00b\x00", "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := ParseEncoding(tt.enc)
			if err != nil {
				t.Fatalf("ParseEncoding() error = %v", err)
			}
			got, err := io.ReadAll(newSourceReader(strings.NewReader(tt.input), enc))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
