package policy

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/haukened/rr-robots/internal/robots/common/clock"
	"github.com/haukened/rr-robots/internal/robots/common/log"
	"github.com/haukened/rr-robots/internal/robots/common/utils"
	"github.com/haukened/rr-robots/internal/robots/domain"
)

// blockState is the accumulator's position in the user-agent block machine.
type blockState uint8

const (
	noBlock        blockState = iota // before any User-agent line
	blockGlobal                      // open block includes the wildcard agent
	blockSpecific                    // open block names the target agent
	blockBoth                        // open block has both wildcard and target
	blockNeither                     // open block names only other agents
)

// includesGlobal reports whether rules in this state land in global scope.
func (s blockState) includesGlobal() bool { return s == blockGlobal || s == blockBoth }

// includesSpecific reports whether rules in this state land in specific scope.
func (s blockState) includesSpecific() bool { return s == blockSpecific || s == blockBoth }

// open reports whether any user-agent block is open at all.
func (s blockState) open() bool { return s != noBlock }

// Parser turns robots.txt content into domain.Policy values. One Parser is
// safe for concurrent use; all per-parse state is local to Parse.
type Parser struct {
	logger log.Logger
	clock  clock.Clock
}

// New constructs a Parser. A nil logger falls back to the noop logger and a
// nil clock to the real one.
func New(logger log.Logger, clk clock.Clock) *Parser {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Parser{logger: logger, clock: clk}
}

// Parse runs one pass over content for the given target agent token and
// returns the resulting policy.
//
// Nil or empty content is an empty file: everything allowed. Malformed
// lines are logged at debug and skipped; Parse never fails on bad input.
func (p *Parser) Parse(content []byte, agent string) *domain.Policy {
	acc := accumulator{
		agent:    domain.ExtractProductToken(agent),
		logger:   p.logger,
		sitemaps: make([]string, 0, 4),
		seen:     make(map[string]struct{}),
	}

	lines := splitLines(content)
	infos := make([]domain.LineInfo, 0, len(lines))
	for _, line := range lines {
		tok := tokenizeLine(line)
		if tok.meta.TooLong {
			p.logger.Warn(map[string]any{"line": line.num, "bytes": len(line.text)}, "line_too_long")
		}
		if tok.hasDirective() {
			acc.handle(domain.Directive{
				Kind:  tok.meta.Kind,
				Key:   tok.key,
				Value: tok.value,
				Line:  line.num,
			}, strings.TrimSpace(line.text))
		}
		infos = append(infos, tok.meta)
	}

	p.logger.Debug(map[string]any{
		"agent":    acc.agent,
		"lines":    len(infos),
		"rules":    len(acc.rules),
		"sitemaps": len(acc.sitemaps),
		"matched":  acc.matchedAgent,
	}, "parse_done")

	return domain.NewPolicy(domain.PolicyParams{
		Agent:            acc.agent,
		Rules:            acc.rules,
		MatchedAgent:     acc.matchedAgent,
		Sitemaps:         acc.sitemaps,
		Lines:            infos,
		SpecificDelay:    acc.specificDelay,
		HasSpecificDelay: acc.hasSpecificDelay,
		GlobalDelay:      acc.globalDelay,
		HasGlobalDelay:   acc.hasGlobalDelay,
		ParsedAt:         p.clock.Now(),
		Fingerprint:      fingerprint(content, acc.agent),
	})
}

// fingerprint identifies a (content, agent) pair for cache keying.
func fingerprint(content []byte, agent string) uint64 {
	h := fnv.New64a()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(agent))
	return h.Sum64()
}

// accumulator is the rule-collection state machine. It consumes classified
// directives in line order and gathers rules, sitemaps and crawl delays.
type accumulator struct {
	agent  string
	logger log.Logger

	state        blockState
	rulesInBlock bool // an Allow/Disallow was seen since the block opened

	matchedAgent bool
	rules        []domain.Rule

	sitemaps []string
	seen     map[string]struct{} // canonical sitemap URLs

	specificDelay    time.Duration
	hasSpecificDelay bool
	globalDelay      time.Duration
	hasGlobalDelay   bool
}

// handle dispatches one directive. text is the trimmed original line,
// retained on rules for decision provenance.
func (a *accumulator) handle(d domain.Directive, text string) {
	switch d.Kind {
	case domain.DirectiveUserAgent:
		a.handleUserAgent(d)
	case domain.DirectiveAllow:
		a.handleRule(d, text, true)
	case domain.DirectiveDisallow:
		a.handleRule(d, text, false)
	case domain.DirectiveSitemap:
		a.handleSitemap(d)
	case domain.DirectiveCrawlDelay:
		a.handleCrawlDelay(d)
	default:
		// Unknown directives are diagnostics only. They never open or
		// close a block.
		a.logger.Debug(map[string]any{"line": d.Line, "key": d.Key}, "skip_unknown_directive")
	}
}

// handleUserAgent opens or extends a user-agent block.
//
// A User-agent line closes the current block only when that block already
// holds rules; consecutive User-agent lines therefore pool several agent
// names onto one shared rule set.
func (a *accumulator) handleUserAgent(d domain.Directive) {
	if a.rulesInBlock {
		a.state = noBlock
		a.rulesInBlock = false
	}

	if domain.IsWildcardAgent(d.Value) {
		switch a.state {
		case noBlock, blockNeither, blockGlobal:
			a.state = blockGlobal
		case blockSpecific, blockBoth:
			a.state = blockBoth
		}
		a.logger.Debug(map[string]any{"line": d.Line}, "block_global")
		return
	}

	token := domain.ExtractProductToken(d.Value)
	if token != "" && domain.AgentTokensEqual(token, a.agent) {
		a.matchedAgent = true
		switch a.state {
		case noBlock, blockNeither, blockSpecific:
			a.state = blockSpecific
		case blockGlobal, blockBoth:
			a.state = blockBoth
		}
		a.logger.Debug(map[string]any{"line": d.Line, "agent": token}, "block_specific")
		return
	}

	// Some other crawler's block. Only transition when this line opens a
	// fresh block; an extra name on an already-matching block is harmless.
	if a.state == noBlock {
		a.state = blockNeither
	}
	a.logger.Debug(map[string]any{"line": d.Line, "agent": d.Value}, "block_other_agent")
}

// handleRule stores an Allow/Disallow pattern for every scope the open
// block covers.
func (a *accumulator) handleRule(d domain.Directive, text string, allow bool) {
	if !a.state.open() {
		a.logger.Debug(map[string]any{"line": d.Line}, "skip_rule_outside_block")
		return
	}
	a.rulesInBlock = true

	if !a.state.includesGlobal() && !a.state.includesSpecific() {
		return
	}

	// An empty Disallow explicitly means "allow everything" and must not
	// become a priority-0 rule that could outrank an allow on ties.
	if !allow && d.Value == "" {
		a.logger.Debug(map[string]any{"line": d.Line}, "skip_empty_disallow")
		return
	}

	pattern := domain.MaybeEscapePattern(d.Value)
	a.appendRule(pattern, allow, d.Line, text)

	// Allow rules for a directory index page also admit the directory
	// itself: "Allow: /foo/index.html" behaves as "Allow: /foo/$" too.
	// Never applied to Disallow.
	if allow {
		if dir, ok := indexPageDir(pattern); ok {
			a.appendRule(dir+"$", true, d.Line, text)
		}
	}
}

// appendRule emits one rule per scope covered by the current block.
func (a *accumulator) appendRule(pattern string, allow bool, line int, text string) {
	if a.state.includesSpecific() {
		if r, err := domain.NewRule(pattern, allow, domain.RuleScopeSpecific, line, text); err == nil {
			a.rules = append(a.rules, r)
		}
	}
	if a.state.includesGlobal() {
		if r, err := domain.NewRule(pattern, allow, domain.RuleScopeGlobal, line, text); err == nil {
			a.rules = append(a.rules, r)
		}
	}
}

// indexPageDir returns the directory prefix of value when its final path
// segment is exactly "index.htm" or "index.html".
func indexPageDir(value string) (string, bool) {
	slash := strings.LastIndexByte(value, '/')
	if slash < 0 {
		return "", false
	}
	switch value[slash+1:] {
	case "index.htm", "index.html":
		return value[:slash+1], true
	}
	return "", false
}

// handleSitemap records a sitemap URL. Sitemaps are global and never touch
// block state; duplicates collapse on the canonicalized URL.
func (a *accumulator) handleSitemap(d domain.Directive) {
	if d.Value == "" {
		return
	}
	key := utils.CanonicalSitemapURL(d.Value)
	if _, dup := a.seen[key]; dup {
		a.logger.Debug(map[string]any{"line": d.Line, "url": d.Value}, "skip_duplicate_sitemap")
		return
	}
	a.seen[key] = struct{}{}
	a.sitemaps = append(a.sitemaps, d.Value)
}

// handleCrawlDelay parses a delay in seconds for the scopes the open block
// covers. Crawl-delay is a side channel and never affects allow/disallow.
func (a *accumulator) handleCrawlDelay(d domain.Directive) {
	if !a.state.open() {
		return
	}
	secs, err := strconv.ParseFloat(d.Value, 64)
	if err != nil || secs < 0 {
		a.logger.Debug(map[string]any{"line": d.Line, "value": d.Value}, "skip_bad_crawl_delay")
		return
	}
	delay := time.Duration(secs * float64(time.Second))
	if a.state.includesSpecific() {
		a.specificDelay = delay
		a.hasSpecificDelay = true
	}
	if a.state.includesGlobal() {
		a.globalDelay = delay
		a.hasGlobalDelay = true
	}
}
