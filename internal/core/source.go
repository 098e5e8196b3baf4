package core

// source.go prepares raw file bytes for the CSV reader:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF) written by Excel is dropped so it
//     does not end up in the first column name
//   - invalid UTF-8 bytes are replaced with '?' so cell widths are counted
//     over valid runes
//
// Files in another encoding are decoded to UTF-8 first (see ParseEncoding).

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/JonMunkholm/csvprofile/internal/dialect"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding maps an encoding name to a decoder. Empty, "utf-8" and
// "utf8" return nil, meaning the input is read as UTF-8 directly.
func ParseEncoding(name string) (encoding.Encoding, error) {
	return dialect.Encoding(name)
}

// newSourceReader wraps r with decoding from enc (nil for UTF-8), BOM
// stripping and UTF-8 sanitising.
func newSourceReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &utf8Sanitizer{src: br}
}

// utf8Sanitizer re-encodes its input rune by rune, writing '?' for every
// byte that does not start a valid UTF-8 sequence.
type utf8Sanitizer struct {
	src *bufio.Reader

	// Tail of a multi-byte rune that did not fit in the caller's buffer.
	pending []byte
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	var buf [utf8.UTFMax]byte
	for n < len(p) {
		r, size, err := s.src.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if r == utf8.RuneError && size == 1 {
			p[n] = '?'
			n++
			continue
		}
		w := utf8.EncodeRune(buf[:], r)
		c := copy(p[n:], buf[:w])
		n += c
		if c < w {
			s.pending = append(s.pending[:0], buf[c:w]...)
		}
	}
	return n, nil
}
