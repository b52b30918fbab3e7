package domain

import "testing"

func TestMaybeEscapePattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/plain/path", "/plain/path"},
		{"/a*b$", "/a*b$"}, // wildcard and anchor pass through
		{"/a%2fb", "/a%2Fb"},
		{"/a%2Fb", "/a%2Fb"},
		{"/%aa%BB%cC", "/%AA%BB%CC"},
		{"/100%", "/100%"},      // bare percent, not an escape
		{"/x%2", "/x%2"},        // truncated escape left alone
		{"/x%gh", "/x%gh"},      // non-hex digits left alone
		{"/café", "/caf%C3%A9"},    // UTF-8 bytes escape individually
		{"/☃", "/%E2%98%83"},       // three-byte sequence
		{"/a%2fbé", "/a%2Fb%C3%A9"},
	}

	for _, tc := range cases {
		if got := MaybeEscapePattern(tc.in); got != tc.want {
			t.Errorf("MaybeEscapePattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Normalization is a fixed point: escaping twice equals escaping once.
func TestMaybeEscapePattern_FixedPoint(t *testing.T) {
	inputs := []string{
		"",
		"/plain",
		"/a%2fb",
		"/café/menü",
		"/%aa*%bb$",
		"/100%",
	}

	for _, in := range inputs {
		once := MaybeEscapePattern(in)
		twice := MaybeEscapePattern(once)
		if once != twice {
			t.Errorf("MaybeEscapePattern not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
