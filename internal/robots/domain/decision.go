package domain

// Decision represents the outcome of evaluating a path against a parsed policy.
// Pure value type, no external dependencies.
type Decision struct {
	Allowed bool   // true if the path may be fetched
	Line    int    // 1-based line of the governing rule, 0 if none matched
	Text    string // original text of the governing rule line, "" if none
}

// IsAllowed is a convenience accessor.
func (d Decision) IsAllowed() bool { return d.Allowed }

// ByDefault reports whether the decision fell through to default-allow,
// i.e. no rule matched at all.
func (d Decision) ByDefault() bool { return d.Line == 0 }

// AllowByDefault returns the open-web default: allowed, no governing rule.
func AllowByDefault() Decision { return Decision{Allowed: true} }
