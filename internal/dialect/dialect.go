// Package dialect names the field delimiters and source encodings a CSV
// file may be read with. The profiler and the config validator both
// resolve names here.
package dialect

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DelimiterNames and EncodingNames list the canonical names for messages.
const (
	DelimiterNames = "comma, semicolon, tab, pipe"
	EncodingNames  = "utf-8, latin1, windows-1252, utf-16, utf-16le, utf-16be"
)

var delimiters = map[string]rune{
	",":         ',',
	"comma":     ',',
	";":         ';',
	"semicolon": ';',
	"\t":        '\t',
	`\t`:        '\t',
	"tab":       '\t',
	"|":         '|',
	"pipe":      '|',
}

var encodings = map[string]encoding.Encoding{
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"utf-16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16":        unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
}

// Delimiter converts a delimiter name to its rune. An empty name returns 0,
// meaning the delimiter is chosen from the file extension.
func Delimiter(name string) (rune, error) {
	key := strings.ToLower(name)
	if key == "" {
		return 0, nil
	}
	if r, ok := delimiters[key]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q (want one of: %s)", name, DelimiterNames)
}

// Encoding maps an encoding name to a decoder. Empty, "utf-8" and "utf8"
// return nil, meaning the input is read as UTF-8 directly.
func Encoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := encodings[key]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q (want one of: %s)", name, EncodingNames)
}
