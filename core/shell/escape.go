package shell

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrInvalidEscape reports an unknown or malformed escape sequence.
	ErrInvalidEscape = errors.New("invalid escape sequence")
	// ErrUnterminatedString reports a double quote with no closing mate.
	ErrUnterminatedString = errors.New("unterminated string literal")
)

func isOctal(c byte) bool { return '0' <= c && c <= '7' }

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return 0xa + c - 'A'
	default:
		return 0xa + c - 'a'
	}
}

// decodeEscape consumes one escape sequence from src, starting at i, the
// index of the byte immediately after the backslash. The decoded bytes are
// appended to dst and the index past the sequence is returned. In
// pass-through mode the significant bytes are copied verbatim instead of
// decoded; the caller is responsible for having emitted the backslash.
//
// On failure the returned index is len(src): the cursor lands on the end
// marker so the caller cannot resume mid-sequence.
func decodeEscape(dst *bytes.Buffer, src string, i int, passthrough bool) (int, error) {
	if i >= len(src) {
		return len(src), fmt.Errorf("%w: trailing backslash", ErrInvalidEscape)
	}

	switch c := src[i]; c {
	case '\\', '\'', '"', '?':
		dst.WriteByte(c)
		return i + 1, nil
	case 'a', 'b', 'e', 'f', 'n', 'r', 't', 'v', 'z':
		if passthrough {
			dst.WriteByte(c)
			return i + 1, nil
		}
		switch c {
		case 'a':
			dst.WriteByte(0x07)
		case 'b':
			dst.WriteByte(0x08)
		case 'e':
			dst.WriteByte(0x1b)
		case 'f':
			dst.WriteByte(0x0c)
		case 'n':
			dst.WriteByte(0x0a)
		case 'r':
			dst.WriteByte(0x0d)
		case 't':
			dst.WriteByte(0x09)
		case 'v':
			dst.WriteByte(0x0b)
		case 'z':
			dst.WriteByte(0xff) // end-of-stream marker
		}
		return i + 1, nil
	case 'x':
		if i+2 >= len(src) {
			return len(src), fmt.Errorf("%w: \\x needs two hex digits", ErrInvalidEscape)
		}
		if passthrough {
			dst.WriteString(src[i : i+3])
			return i + 3, nil
		}
		if !isHex(src[i+1]) || !isHex(src[i+2]) {
			return len(src), fmt.Errorf("%w: \\x%c%c", ErrInvalidEscape, src[i+1], src[i+2])
		}
		dst.WriteByte(hexVal(src[i+1])<<4 | hexVal(src[i+2]))
		return i + 3, nil
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// \0' is a special two-character spelling of NUL.
		if c == '0' && i+1 < len(src) && src[i+1] == '\'' {
			if passthrough {
				dst.WriteString(src[i : i+2])
			} else {
				dst.WriteByte(0)
			}
			return i + 2, nil
		}
		if i+2 >= len(src) || !isOctal(src[i+1]) || !isOctal(src[i+2]) {
			return len(src), fmt.Errorf("%w: \\%c needs three octal digits", ErrInvalidEscape, c)
		}
		if passthrough {
			dst.WriteString(src[i : i+3])
		} else {
			dst.WriteByte((c-'0')<<6 | (src[i+1]-'0')<<3 | (src[i+2] - '0'))
		}
		return i + 3, nil
	default:
		return len(src), fmt.Errorf("%w: \\%c", ErrInvalidEscape, c)
	}
}
