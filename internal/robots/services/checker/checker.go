// Package checker is the service layer of rr-robots: it owns the
// parse-once / query-many flow, routing path decisions through the
// decision cache and surfacing sitemaps and crawl delays.
package checker

import (
	"strconv"

	"github.com/haukened/rr-robots/internal/robots/common/log"
	"github.com/haukened/rr-robots/internal/robots/common/utils"
	"github.com/haukened/rr-robots/internal/robots/domain"
)

// Checker evaluates URLs against robots.txt policies.
//
// A Checker is safe for concurrent use when its cache is; all per-query
// state lives in the immutable Policy and on the stack.
type Checker struct {
	parser PolicyParser
	cache  DecisionCache
	logger log.Logger
}

// Options configures a Checker.
type Options struct {
	Parser PolicyParser
	Cache  DecisionCache // nil disables decision memoization
	Logger log.Logger    // nil falls back to the noop logger
}

// New constructs a Checker. The parser is required.
func New(opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Checker{
		parser: opts.Parser,
		cache:  opts.Cache,
		logger: logger,
	}
}

// Policy parses robots.txt content for the given agent token.
//
// An invalid agent token is advisory, not fatal: the parse proceeds, the
// agent simply cannot match any specific block, so wildcard rules govern.
func (c *Checker) Policy(content []byte, agent string) *domain.Policy {
	if !domain.IsValidUserAgent(agent) {
		c.logger.Warn(map[string]any{"agent": agent}, "agent_not_a_product_token")
	}
	return c.parser.Parse(content, agent)
}

// Decide evaluates one URL (or bare path) against a parsed policy.
func (c *Checker) Decide(policy *domain.Policy, rawURL string) domain.Decision {
	path := utils.TargetPath(rawURL)

	key := decisionKey(policy, path)
	if c.cache != nil {
		if d, ok := c.cache.Get(key); ok {
			return d
		}
	}

	d := policy.Decide(path)
	if c.cache != nil {
		c.cache.Put(key, d)
	}

	c.logger.Debug(map[string]any{
		"agent":   policy.Agent(),
		"path":    path,
		"allowed": d.Allowed,
		"line":    d.Line,
	}, "decision")
	return d
}

// Check is the one-shot convenience: parse content and decide a single URL.
// Prefer Policy + Decide when querying many paths against one file.
func (c *Checker) Check(content []byte, agent, rawURL string) domain.Decision {
	return c.Decide(c.Policy(content, agent), rawURL)
}

// decisionKey builds the cache key for one (policy, path) pair. The
// fingerprint covers content and agent, so distinct files never collide on
// equal paths.
func decisionKey(policy *domain.Policy, path string) string {
	return strconv.FormatUint(policy.Fingerprint(), 16) + "|" + path
}
