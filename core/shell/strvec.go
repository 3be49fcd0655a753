package shell

import (
	"strings"
	"unicode/utf8"
)

// Split breaks s into fields on any byte in delims. Consecutive
// delimiters collapse, so no empty fields are produced.
func Split(s, delims string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < utf8.RuneSelf && strings.IndexByte(delims, byte(r)) >= 0
	})
}

// Join flattens sv into one string with sep between elements, head
// prepended and tail appended. An empty sv yields head + tail.
func Join(sv []string, sep, head, tail string) string {
	var b strings.Builder
	b.WriteString(head)
	for i, s := range sv {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
	b.WriteString(tail)
	return b.String()
}
