package domain

import (
	"time"
)

// matchCandidate tracks the best-so-far rule for one (scope, direction)
// pair while folding rules into a decision. Priority only ever increases,
// so declaration order cannot influence the outcome.
type matchCandidate struct {
	priority int
	line     int
	text     string
}

// offer replaces the candidate when the new priority is strictly higher.
func (c *matchCandidate) offer(priority, line int, text string) {
	if priority > c.priority {
		c.priority = priority
		c.line = line
		c.text = text
	}
}

func (c *matchCandidate) matched() bool { return c.priority >= 0 }

// Policy is an immutable parsed robots.txt rule set, bound to the target
// agent it was parsed for. Parse once, then query any number of paths;
// concurrent reads are safe because nothing mutates after construction.
type Policy struct {
	agent        string
	rules        []Rule
	matchedAgent bool
	sitemaps     []string
	lines        []LineInfo

	specificDelay    time.Duration
	hasSpecificDelay bool
	globalDelay      time.Duration
	hasGlobalDelay   bool

	parsedAt    time.Time
	fingerprint uint64
}

// PolicyParams carries everything a parser collected in one pass.
type PolicyParams struct {
	Agent        string
	Rules        []Rule
	MatchedAgent bool // a block naming Agent was seen anywhere in the file
	Sitemaps     []string
	Lines        []LineInfo

	SpecificDelay    time.Duration
	HasSpecificDelay bool
	GlobalDelay      time.Duration
	HasGlobalDelay   bool

	ParsedAt    time.Time
	Fingerprint uint64
}

// NewPolicy constructs a Policy from a completed parse pass.
func NewPolicy(p PolicyParams) *Policy {
	return &Policy{
		agent:            p.Agent,
		rules:            p.Rules,
		matchedAgent:     p.MatchedAgent,
		sitemaps:         p.Sitemaps,
		lines:            p.Lines,
		specificDelay:    p.SpecificDelay,
		hasSpecificDelay: p.HasSpecificDelay,
		globalDelay:      p.GlobalDelay,
		hasGlobalDelay:   p.HasGlobalDelay,
		parsedAt:         p.ParsedAt,
		fingerprint:      p.Fingerprint,
	}
}

// Agent returns the target agent token the policy was parsed for.
func (p *Policy) Agent() string { return p.agent }

// MatchedAgent reports whether any block in the file named the target agent.
func (p *Policy) MatchedAgent() bool { return p.matchedAgent }

// Rules returns the collected rules in declaration order.
func (p *Policy) Rules() []Rule { return p.rules }

// Sitemaps returns the deduplicated sitemap URLs found in the file.
func (p *Policy) Sitemaps() []string { return p.sitemaps }

// Lines returns per-line diagnostics gathered during the parse.
func (p *Policy) Lines() []LineInfo { return p.lines }

// ParsedAt returns when the policy was parsed.
func (p *Policy) ParsedAt() time.Time { return p.parsedAt }

// Fingerprint identifies the (content, agent) pair the policy came from.
// Useful as a cache key component; not a cryptographic hash.
func (p *Policy) Fingerprint() uint64 { return p.fingerprint }

// CrawlDelay returns the crawl delay applying to the target agent, if any.
// A delay in a block naming the agent beats one in a wildcard block, the
// same specific-over-global precedence Allow/Disallow scoping uses.
func (p *Policy) CrawlDelay() (time.Duration, bool) {
	if p.hasSpecificDelay {
		return p.specificDelay, true
	}
	if p.hasGlobalDelay {
		return p.globalDelay, true
	}
	return 0, false
}

// Decide evaluates one path against the policy.
//
// Every rule is folded into four candidates, one per (scope, direction).
// Tracking scopes separately enforces the invariant that specific and
// global rules are never consulted together:
//
//  1. If any specific rule matched, disallow wins only with strictly
//     higher priority than allow; ties go to allow.
//  2. Else, if a block naming the agent exists at all, allow by default.
//     Global rules are not consulted.
//  3. Else, if any global rule matched, resolve as in step 1.
//  4. Else allow by default.
//
// The decision carries the line number and text of the winning rule;
// default-allow reports line 0 and empty text.
func (p *Policy) Decide(path string) Decision {
	if path == "" {
		path = "/"
	}

	noMatch := matchCandidate{priority: -1}
	specificAllow, specificDisallow := noMatch, noMatch
	globalAllow, globalDisallow := noMatch, noMatch

	for _, r := range p.rules {
		priority := MatchPriority(path, r.Pattern)
		if priority < 0 {
			continue
		}
		switch {
		case r.IsSpecific() && r.Allow:
			specificAllow.offer(priority, r.Line, r.Text)
		case r.IsSpecific():
			specificDisallow.offer(priority, r.Line, r.Text)
		case r.Allow:
			globalAllow.offer(priority, r.Line, r.Text)
		default:
			globalDisallow.offer(priority, r.Line, r.Text)
		}
	}

	if specificAllow.matched() || specificDisallow.matched() {
		return resolve(specificAllow, specificDisallow)
	}
	if p.matchedAgent {
		return AllowByDefault()
	}
	if globalAllow.matched() || globalDisallow.matched() {
		return resolve(globalAllow, globalDisallow)
	}
	return AllowByDefault()
}

// resolve applies longest-match-wins with ties to allow.
func resolve(allow, disallow matchCandidate) Decision {
	if disallow.priority > allow.priority {
		return Decision{Allowed: false, Line: disallow.line, Text: disallow.text}
	}
	if allow.matched() {
		return Decision{Allowed: true, Line: allow.line, Text: allow.text}
	}
	return AllowByDefault()
}
