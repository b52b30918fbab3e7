package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// CanonicalSitemapURL returns a canonical form of a sitemap URL for
// deduplication: lowercased scheme, host converted to its ASCII (punycode)
// form and lowercased. Two Sitemap lines naming the same map through an
// internationalized and an ASCII hostname collapse to one entry.
//
// Unparseable values canonicalize to themselves; dedup then degrades to
// exact string comparison, which is still correct.
func CanonicalSitemapURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.ToLower(u.Host)
	if ascii, err := idna.ToASCII(u.Hostname()); err == nil {
		ascii = strings.ToLower(ascii)
		if port := u.Port(); port != "" {
			host = ascii + ":" + port
		} else {
			host = ascii
		}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = host
	return u.String()
}
