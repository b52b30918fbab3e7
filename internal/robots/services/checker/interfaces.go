package checker

import "github.com/haukened/rr-robots/internal/robots/domain"

// PolicyParser turns raw robots.txt content into an immutable policy for
// one target agent.
type PolicyParser interface {
	Parse(content []byte, agent string) *domain.Policy
}

// DecisionCache memoizes decisions across repeated path queries. The
// repos/policy LRU cache satisfies this; a nil cache disables memoization.
type DecisionCache interface {
	Get(key string) (domain.Decision, bool)
	Put(key string, d domain.Decision)
}
