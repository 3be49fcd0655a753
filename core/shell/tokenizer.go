package shell

import (
	"bytes"
	"fmt"
	"strings"
)

// Fold splits line into words on any byte in delims while treating
// double-quoted regions as atomic. Quoted and unquoted fragments that
// adjoin form a single word.
//
// With keepQuotes set, the quotes themselves and any escape sequences
// inside them are preserved byte for byte so a later pass can re-tokenize
// the word. Otherwise the quotes are stripped and escapes decoded.
func Fold(line, delims string, keepQuotes bool) ([]string, error) {
	var words []string
	var buf bytes.Buffer

	emit := func() {
		if buf.Len() > 0 {
			words = append(words, buf.String())
			buf.Reset()
		}
	}

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case strings.IndexByte(delims, c) >= 0:
			emit()
			i++

		case c == '"':
			if keepQuotes {
				buf.WriteByte('"')
			}
			i++
			closed := false
			for i < len(line) {
				if line[i] == '"' {
					closed = true
					i++
					break
				}
				if line[i] == '\\' {
					if keepQuotes {
						buf.WriteByte('\\')
					}
					var err error
					i, err = decodeEscape(&buf, line, i+1, keepQuotes)
					if err != nil {
						return nil, fmt.Errorf("parsing string literal: %w", err)
					}
					continue
				}
				buf.WriteByte(line[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedString
			}
			if keepQuotes {
				buf.WriteByte('"')
			}

		default:
			buf.WriteByte(c)
			i++
		}
	}
	emit()

	return words, nil
}
