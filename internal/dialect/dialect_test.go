package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDelimiter(t *testing.T) {
	tests := []struct {
		name string
		want rune
	}{
		{"", 0},
		{",", ','},
		{"Comma", ','},
		{"semicolon", ';'},
		{`\t`, '\t'},
		{"TAB", '\t'},
		{"pipe", '|'},
	}
	for _, tt := range tests {
		got, err := Delimiter(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := Delimiter("colon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), DelimiterNames)
}

func TestEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", " UTF8 "} {
		enc, err := Encoding(name)
		require.NoError(t, err, name)
		assert.Nil(t, enc, name)
	}

	enc, err := Encoding("Latin-1")
	require.NoError(t, err)
	assert.Equal(t, charmap.ISO8859_1, enc)

	for _, name := range []string{"cp1252", "utf-16", "utf-16le", "utf-16be"} {
		enc, err := Encoding(name)
		require.NoError(t, err, name)
		assert.NotNil(t, enc, name)
	}

	_, err = Encoding("ebcdic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebcdic")
}
