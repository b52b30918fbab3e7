// Package utils holds small URL helpers shared by the parser, the checker
// service and the CLI.
package utils

import "strings"

// TargetPath reduces a URL to the path+query form rules are matched
// against: always starting with "/", scheme/authority/fragment stripped.
//
// It deliberately avoids net/url: robots.txt matching operates on the raw
// byte form of the request target, and url.Parse both rejects inputs a
// crawler still has to decide about and re-encodes ones it accepts.
// Handled shapes:
//
//	http://host/a/b?c=d  -> /a/b?c=d
//	//host/a             -> /a      (protocol-relative)
//	host/a               -> /a
//	/a/b                 -> /a/b    (already a path)
//	http://host          -> /
//	garbage              -> /
func TargetPath(rawURL string) string {
	s := rawURL

	// Fragment is never part of the request target.
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	// Strip "scheme://" or a protocol-relative "//".
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	} else if strings.HasPrefix(s, "//") {
		s = s[2:]
	} else if i := strings.IndexByte(s, '/'); i > 0 {
		// "host/path" with no scheme: treat everything before the first
		// slash as authority.
		s = s[i:]
	}

	if strings.HasPrefix(s, "/") {
		return s
	}

	// Only an authority (or nothing) remains.
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[i:]
	}
	return "/"
}
