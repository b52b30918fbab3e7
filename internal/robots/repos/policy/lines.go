// Package policy parses robots.txt content into immutable domain.Policy
// values. The parser is maximally tolerant: malformed lines are skipped,
// never fatal, and an empty or missing file parses to a policy that allows
// everything.
package policy

import (
	"bytes"
	"strings"

	"github.com/haukened/rr-robots/internal/robots/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// logicalLine is one line of robots.txt content, 1-based, with its raw text
// and the over-length flag. Ephemeral: consumed immediately by the tokenizer.
type logicalLine struct {
	num     int
	text    string
	tooLong bool
}

// splitLines cuts raw content into logical lines.
//
// A leading UTF-8 byte-order mark is stripped byte-exact. Any of \r\n, \r,
// \n terminates a line, with \r\n counting as a single terminator. The
// trailing segment is always emitted, so a file without a final newline
// still yields its last line and an empty file yields one empty line.
func splitLines(data []byte) []logicalLine {
	data = bytes.TrimPrefix(data, utf8BOM)

	lines := make([]logicalLine, 0, bytes.Count(data, []byte{'\n'})+1)
	num := 1
	start := 0

	emit := func(end int) {
		lines = append(lines, logicalLine{
			num:     num,
			text:    string(data[start:end]),
			tooLong: end-start >= domain.MaxLineLength,
		})
		num++
	}

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			emit(i)
			start = i + 1
		case '\r':
			emit(i)
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	emit(len(data))

	return lines
}

// lineToken is the result of tokenizing one logical line.
type lineToken struct {
	key   string
	value string
	meta  domain.LineInfo
}

// hasDirective reports whether a key/value pair was extracted.
func (t lineToken) hasDirective() bool { return t.meta.HasDirective }

// tokenizeLine splits a logical line into key and value.
//
// Everything from the first '#' on is comment and removed before any other
// processing. The separator is ':'; when absent, a whitespace run is
// accepted as separator only if that leaves exactly two tokens, which
// tolerates "User-agent FooBot" without accepting arbitrary garbage. A
// directive needs a non-empty key; an empty value is fine ("Disallow:").
func tokenizeLine(line logicalLine) lineToken {
	tok := lineToken{meta: domain.LineInfo{Line: line.num, TooLong: line.tooLong}}

	text := line.text
	if idx := strings.IndexByte(text, '#'); idx >= 0 {
		tok.meta.Comment = true
		text = text[:idx]
	}

	text = strings.TrimSpace(text)
	if text == "" {
		tok.meta.Empty = !tok.meta.Comment
		return tok
	}

	var key, value string
	if idx := strings.IndexByte(text, ':'); idx >= 0 {
		key = strings.TrimSpace(text[:idx])
		value = strings.TrimSpace(text[idx+1:])
	} else {
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return tok
		}
		key, value = fields[0], fields[1]
		tok.meta.WhitespaceSep = true
	}

	if key == "" {
		return tok
	}

	tok.key = key
	tok.value = value
	tok.meta.Key = key
	tok.meta.Kind = domain.ClassifyKey(key)
	tok.meta.HasDirective = true
	return tok
}
