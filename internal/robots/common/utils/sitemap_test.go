package utils

import "testing"

func TestCanonicalSitemapURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://example.com/sitemap.xml", "http://example.com/sitemap.xml"},
		{"HTTP://EXAMPLE.COM/sitemap.xml", "http://example.com/sitemap.xml"},
		{"https://example.com:8080/s.xml", "https://example.com:8080/s.xml"},
		{"  http://example.com/s.xml ", "http://example.com/s.xml"},
		{"not a url", "not a url"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := CanonicalSitemapURL(tc.in); got != tc.want {
			t.Errorf("CanonicalSitemapURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalSitemapURL_IDNACollapse(t *testing.T) {
	unicode := CanonicalSitemapURL("http://bücher.example/sitemap.xml")
	punycode := CanonicalSitemapURL("http://xn--bcher-kva.example/sitemap.xml")
	if unicode != punycode {
		t.Errorf("IDN forms did not collapse: %q vs %q", unicode, punycode)
	}
}
