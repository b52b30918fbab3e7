package domain

// MaxLineLength is the byte length at or past which a robots.txt line is
// flagged as over-long: the historical 2083-byte browser URL limit with an
// 8x safety margin. Over-long lines are flagged, never truncated or dropped.
const MaxLineLength = 2083 * 8

// LineInfo describes one logical line of a robots.txt file for diagnostics.
// The flags have no effect on matching; they exist so callers can report on
// what the parser saw.
type LineInfo struct {
	Line          int           // 1-based line number
	Kind          DirectiveKind // DirectiveUnknown when no directive parsed
	Key           string        // original key text, "" when no directive
	Empty         bool          // nothing left after trimming
	Comment       bool          // a '#' comment was present
	HasDirective  bool          // a key/value pair was extracted
	TooLong       bool          // byte length >= MaxLineLength
	WhitespaceSep bool          // key/value split on whitespace, not ':'
}
