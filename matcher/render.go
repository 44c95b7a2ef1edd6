package matcher

import (
	"strings"
)

const hexDigits = "0123456789abcdef"

func writeHex(b *strings.Builder, v byte) {
	b.WriteByte(hexDigits[v>>4])
	b.WriteByte(hexDigits[v&0x0f])
}

func hexString(v byte) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0x0f]})
}

// isQuotable reports whether v can appear inside a '...' string in pretty output.
func isQuotable(v byte) bool {
	return v >= 0x20 && v < 0x7f && v != '\'' && v != '`'
}

// byteToken renders a single byte, quoted if pretty and printable.
func byteToken(v byte, pretty bool) string {
	if pretty && isQuotable(v) && v != ' ' {
		return "'" + string(v) + "'"
	}
	return hexString(v)
}

// renderBytes renders literal bytes. Pretty output quotes runs of printable
// characters and separates tokens with spaces.
func renderBytes(bs []byte, pretty bool) string {
	var b strings.Builder
	if !pretty {
		for _, v := range bs {
			writeHex(&b, v)
		}
		return b.String()
	}
	inString := false
	for i, v := range bs {
		if isQuotable(v) {
			if !inString {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteByte('\'')
				inString = true
			}
			b.WriteByte(v)
			continue
		}
		if inString {
			b.WriteByte('\'')
			inString = false
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		writeHex(&b, v)
	}
	if inString {
		b.WriteByte('\'')
	}
	return b.String()
}

// renderSet renders a byte set as a bracketed list of bytes and ranges,
// inverting when the complement is the smaller description.
func renderSet(s ByteSet, pretty bool) string {
	if s.IsFull() {
		return "."
	}
	var b strings.Builder
	if s.Len() > 128 {
		b.WriteByte('^')
		s = s.Complement()
	}
	b.WriteByte('[')
	for i, r := range s.Ranges() {
		if i > 0 && pretty {
			b.WriteByte(' ')
		}
		b.WriteString(byteToken(r.Lo, pretty))
		if r.Hi != r.Lo {
			b.WriteByte('-')
			b.WriteString(byteToken(r.Hi, pretty))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func joinRendered(parts []string, pretty bool) string {
	if pretty {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts, "")
}
