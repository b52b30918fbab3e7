package policy

import "github.com/haukened/rr-robots/internal/robots/domain"

// DecisionCache memoizes per-path decisions for parsed policies with basic
// metrics. Keys are produced by the caller, typically from a policy
// fingerprint plus the evaluated path.
type DecisionCache interface {
	Get(key string) (domain.Decision, bool)
	Put(key string, d domain.Decision)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}
