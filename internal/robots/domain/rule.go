package domain

import (
	"fmt"
	"strings"
)

// RuleScope records which user-agent block a rule was collected from.
//
// global   - the rule sits in a wildcard (*) block
// specific - the rule sits in a block naming the target agent
type RuleScope uint8

const (
	// RuleScopeGlobal applies to every crawler via the wildcard agent.
	RuleScopeGlobal RuleScope = iota
	// RuleScopeSpecific applies to the target agent by name.
	RuleScopeSpecific
)

// String returns a stable string representation of the rule scope.
func (s RuleScope) String() string {
	switch s {
	case RuleScopeGlobal:
		return "global"
	case RuleScopeSpecific:
		return "specific"
	default:
		return fmt.Sprintf("RuleScope(%d)", s)
	}
}

// Rule is a single Allow or Disallow pattern collected during a parse.
//
// Notes:
// - Pattern is expected to be normalized already (see MaybeEscapePattern).
// - Line is the 1-based source line the rule came from.
// - Text is the original line text, kept for decision provenance.
// Rules are immutable once created and live as long as their Policy.
type Rule struct {
	Pattern string
	Allow   bool
	Scope   RuleScope
	Line    int
	Text    string
}

// NewRule constructs a Rule and validates its fields.
func NewRule(pattern string, allow bool, scope RuleScope, line int, text string) (Rule, error) {
	r := Rule{
		Pattern: pattern,
		Allow:   allow,
		Scope:   scope,
		Line:    line,
		Text:    strings.TrimSpace(text),
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// NewAllowRule is a convenience constructor for an Allow rule.
func NewAllowRule(pattern string, scope RuleScope, line int, text string) (Rule, error) {
	return NewRule(pattern, true, scope, line, text)
}

// NewDisallowRule is a convenience constructor for a Disallow rule.
func NewDisallowRule(pattern string, scope RuleScope, line int, text string) (Rule, error) {
	return NewRule(pattern, false, scope, line, text)
}

// Validate checks the Rule for supported values.
//
// An empty pattern is legal: it matches every path at the lowest priority.
// Empty-valued Disallow lines are dropped before rule construction, so an
// empty pattern only ever reaches here on Allow rules.
func (r Rule) Validate() error {
	if r.Line < 1 {
		return fmt.Errorf("rule line must be 1-based, got %d", r.Line)
	}
	switch r.Scope {
	case RuleScopeGlobal, RuleScopeSpecific:
		// ok
	default:
		return fmt.Errorf("unsupported RuleScope: %d", r.Scope)
	}
	return nil
}

// IsGlobal returns true when the rule came from a wildcard block.
func (r Rule) IsGlobal() bool { return r.Scope == RuleScopeGlobal }

// IsSpecific returns true when the rule came from a block naming the target agent.
func (r Rule) IsSpecific() bool { return r.Scope == RuleScopeSpecific }
