package domain

import (
	"fmt"
	"strings"
)

// DirectiveKind identifies which robots.txt directive a line carries.
type DirectiveKind uint8

const (
	// DirectiveUnknown is any key that is not a recognized directive.
	DirectiveUnknown DirectiveKind = iota
	// DirectiveUserAgent starts or extends a user-agent block.
	DirectiveUserAgent
	// DirectiveAllow permits paths matching its pattern.
	DirectiveAllow
	// DirectiveDisallow forbids paths matching its pattern.
	DirectiveDisallow
	// DirectiveSitemap announces a sitemap URL; always global.
	DirectiveSitemap
	// DirectiveCrawlDelay is a non-standard per-agent delay hint.
	DirectiveCrawlDelay
)

// String returns a stable string representation of the directive kind.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveUserAgent:
		return "user-agent"
	case DirectiveAllow:
		return "allow"
	case DirectiveDisallow:
		return "disallow"
	case DirectiveSitemap:
		return "sitemap"
	case DirectiveCrawlDelay:
		return "crawl-delay"
	case DirectiveUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", k)
	}
}

// ClassifyKey maps the key portion of a robots.txt line to a DirectiveKind.
//
// Classification is a case-insensitive prefix match, so keys like
// "Disallowed" or "user-agent:" leftovers still classify. "disallow" is
// tested before "allow" since neither is a prefix of the other but the
// order makes the intent obvious. Unrecognized keys classify as
// DirectiveUnknown and never influence matching.
func ClassifyKey(key string) DirectiveKind {
	k := strings.ToLower(key)
	switch {
	case strings.HasPrefix(k, "user-agent"):
		return DirectiveUserAgent
	case strings.HasPrefix(k, "disallow"):
		return DirectiveDisallow
	case strings.HasPrefix(k, "allow"):
		return DirectiveAllow
	case strings.HasPrefix(k, "sitemap"):
		return DirectiveSitemap
	case strings.HasPrefix(k, "crawl-delay"):
		return DirectiveCrawlDelay
	default:
		return DirectiveUnknown
	}
}

// Directive is one classified key/value pair from a robots.txt line.
//
// Value is the trimmed text after the separator. For unknown directives Key
// retains the original key text for diagnostics.
type Directive struct {
	Kind  DirectiveKind
	Key   string
	Value string
	Line  int // 1-based source line number
}
