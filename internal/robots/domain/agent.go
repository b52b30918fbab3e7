package domain

// User-agent token handling. Agent names compare by their product token:
// the leading run of [a-zA-Z_-] bytes, case-insensitively. Versions and
// comments after the token are ignored, so "FooBot/1.2" matches "foobot".

// isProductTokenByte reports whether b may appear in a product token.
func isProductTokenByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '-' || b == '_'
}

// IsValidUserAgent reports whether s is a well-formed target agent token:
// non-empty and consisting solely of [a-zA-Z_-].
//
// This is advisory. Callers passing an invalid token still get an answer,
// they just should not expect specific-agent blocks to match it.
func IsValidUserAgent(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isProductTokenByte(s[i]) {
			return false
		}
	}
	return true
}

// ExtractProductToken returns the product-token prefix of an agent name as
// found in a User-agent line, e.g. "FooBot/1.2 (+http://foo)" -> "FooBot".
func ExtractProductToken(agent string) string {
	end := 0
	for end < len(agent) && isProductTokenByte(agent[end]) {
		end++
	}
	return agent[:end]
}

// IsWildcardAgent reports whether a User-agent value names the global
// wildcard. Real-world files sometimes carry trailing junk ("* baz"), so a
// '*' followed by whitespace also counts.
func IsWildcardAgent(value string) bool {
	if len(value) == 0 || value[0] != '*' {
		return false
	}
	return len(value) == 1 || value[1] == ' ' || value[1] == '\t'
}

// AgentTokensEqual compares two product tokens case-insensitively without
// allocating. Both sides are expected to be plain ASCII tokens.
func AgentTokensEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
