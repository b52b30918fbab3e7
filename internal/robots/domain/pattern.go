package domain

// Pattern matching for Allow/Disallow values.
//
// Patterns are matched against the start of the path. '*' matches zero or
// more bytes. '$' as the final pattern byte anchors the match to the end of
// the path; anywhere else it is a literal. Matching is byte-wise and
// case-sensitive.
//
// Both the path and the pattern are controlled by third parties, so the
// matcher must not backtrack: it tracks the set of path offsets consistent
// with the pattern consumed so far, which bounds work at
// O(len(path) * len(pattern)) time and O(len(path)) space.

// PathMatches reports whether path matches pattern.
func PathMatches(path, pattern string) bool {
	// Offsets into path that the pattern prefix consumed so far can reach.
	// Always sorted ascending; starts as {0}.
	pos := make([]int, 1, len(path)+1)

	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		if ch == '$' && i == len(pattern)-1 {
			// End anchor: some reachable offset must sit at the very end
			// of the path. Offsets are ascending, so checking the largest
			// suffices.
			return pos[len(pos)-1] == len(path)
		}

		if ch == '*' {
			// The wildcard extends every reachable offset to any offset at
			// or beyond the smallest one.
			min := pos[0]
			pos = pos[:0]
			for p := min; p <= len(path); p++ {
				pos = append(pos, p)
			}
			continue
		}

		// Literal byte, including '$' in non-final position. Keep only
		// offsets where the path carries that byte, and advance them.
		next := pos[:0]
		for _, p := range pos {
			if p < len(path) && path[p] == ch {
				next = append(next, p+1)
			}
		}
		pos = next
		if len(pos) == 0 {
			return false
		}
	}

	// Pattern exhausted without an anchor: any surviving offset is a match.
	return true
}

// MatchPriority ranks pattern against path for longest-match resolution.
//
// It returns -1 when the pattern does not match, 0 for the empty pattern
// (which trivially matches everything at the lowest priority), and
// len(pattern) on a match, so longer patterns outrank shorter ones.
func MatchPriority(path, pattern string) int {
	if len(pattern) == 0 {
		return 0
	}
	if PathMatches(path, pattern) {
		return len(pattern)
	}
	return -1
}
