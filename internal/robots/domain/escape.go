package domain

// Pattern normalization for Allow/Disallow values. User-agent and Sitemap
// values are literals, never patterns, and are left alone.

const upperHex = "0123456789ABCDEF"

// isHexDigit reports whether b is an ASCII hex digit.
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// MaybeEscapePattern canonicalizes a rule pattern so that byte-wise matching
// lines up with percent-encoded request paths:
//
//   - the hex digits of a well-formed %XX escape already present are
//     uppercased,
//   - every byte with the high bit set (raw UTF-8 lead/continuation bytes)
//     is percent-encoded as uppercase %XX,
//   - all other US-ASCII bytes, including '*' and '$', pass through.
//
// The function operates on bytes, not runes, so a multi-byte UTF-8 sequence
// splits into one escape per byte. Applying it twice returns the same string
// as applying it once.
func MaybeEscapePattern(pattern string) string {
	needsWork := false
	for i := 0; i < len(pattern); i++ {
		b := pattern[i]
		if b >= 0x80 {
			needsWork = true
			break
		}
		if b == '%' && i+2 < len(pattern) && isHexDigit(pattern[i+1]) && isHexDigit(pattern[i+2]) {
			if pattern[i+1] >= 'a' || pattern[i+2] >= 'a' {
				needsWork = true
				break
			}
		}
	}
	if !needsWork {
		return pattern
	}

	out := make([]byte, 0, len(pattern)+8)
	for i := 0; i < len(pattern); i++ {
		b := pattern[i]
		switch {
		case b == '%' && i+2 < len(pattern) && isHexDigit(pattern[i+1]) && isHexDigit(pattern[i+2]):
			out = append(out, '%', upperASCIIHex(pattern[i+1]), upperASCIIHex(pattern[i+2]))
			i += 2
		case b >= 0x80:
			out = append(out, '%', upperHex[b>>4], upperHex[b&0x0F])
		default:
			out = append(out, b)
		}
	}
	return string(out)
}

// upperASCIIHex uppercases a single hex digit byte.
func upperASCIIHex(b byte) byte {
	if b >= 'a' && b <= 'f' {
		return b - ('a' - 'A')
	}
	return b
}
