package docx

import "strings"

// EscapeText escapes text for use in XML character data and attribute values.
// Runes that XML 1.0 cannot carry (control characters other than tab,
// newline and carriage return) are dropped.
func EscapeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/8)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&apos;")
		case '\t', '\n', '\r':
			result.WriteRune(r)
		default:
			if !isXMLChar(r) {
				continue
			}
			result.WriteRune(r)
		}
	}

	return result.String()
}

func isXMLChar(r rune) bool {
	switch {
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	default:
		return r <= 0x10FFFF
	}
}
