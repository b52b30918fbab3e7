package domain

import (
	"testing"
	"time"
)

func mustRule(t *testing.T, pattern string, allow bool, scope RuleScope, line int) Rule {
	t.Helper()
	text := "Disallow: " + pattern
	if allow {
		text = "Allow: " + pattern
	}
	r, err := NewRule(pattern, allow, scope, line, text)
	if err != nil {
		t.Fatalf("NewRule(%q): %v", pattern, err)
	}
	return r
}

func newTestPolicy(t *testing.T, matchedAgent bool, rules ...Rule) *Policy {
	t.Helper()
	return NewPolicy(PolicyParams{
		Agent:        "FooBot",
		Rules:        rules,
		MatchedAgent: matchedAgent,
		ParsedAt:     time.Now(),
	})
}

func TestDecide_NoRulesDefaultAllow(t *testing.T) {
	p := newTestPolicy(t, false)

	d := p.Decide("/anything")
	if !d.Allowed {
		t.Fatalf("expected default allow, got %+v", d)
	}
	if d.Line != 0 || d.Text != "" {
		t.Errorf("default allow must report line 0 / empty text, got %+v", d)
	}
	if !d.ByDefault() {
		t.Errorf("ByDefault() = false for default allow")
	}
}

func TestDecide_SpecificDisallow(t *testing.T) {
	// User-agent: FooBot / Disallow: /
	p := newTestPolicy(t, true, mustRule(t, "/", false, RuleScopeSpecific, 2))

	d := p.Decide("/x/y")
	if d.Allowed {
		t.Fatalf("expected disallow, got %+v", d)
	}
	if d.Line != 2 {
		t.Errorf("Line = %d, want 2", d.Line)
	}
	if d.Text != "Disallow: /" {
		t.Errorf("Text = %q", d.Text)
	}
}

func TestDecide_LongestMatchWins(t *testing.T) {
	disallow := mustRule(t, "/admin", false, RuleScopeGlobal, 2)
	allow := mustRule(t, "/admin/public", true, RuleScopeGlobal, 3)

	// Declaration order must not matter.
	for _, rules := range [][]Rule{{disallow, allow}, {allow, disallow}} {
		p := newTestPolicy(t, false, rules...)
		d := p.Decide("/admin/public/page.html")
		if !d.Allowed {
			t.Fatalf("expected allow via longer pattern, got %+v", d)
		}
		if d.Line != 3 {
			t.Errorf("Line = %d, want 3", d.Line)
		}

		if got := p.Decide("/admin/secret"); got.Allowed {
			t.Errorf("expected disallow for /admin/secret, got %+v", got)
		}
	}
}

func TestDecide_EqualPriorityTieGoesToAllow(t *testing.T) {
	p := newTestPolicy(t, false,
		mustRule(t, "/page", false, RuleScopeGlobal, 1),
		mustRule(t, "/page", true, RuleScopeGlobal, 2),
	)

	d := p.Decide("/page.html")
	if !d.Allowed {
		t.Fatalf("equal-length patterns must favor allow, got %+v", d)
	}
	if d.Line != 2 {
		t.Errorf("Line = %d, want 2 (the allow rule)", d.Line)
	}
}

func TestDecide_SpecificSectionSuppressesGlobal(t *testing.T) {
	// A block naming the agent exists but holds no rule matching this
	// path; the global disallow must not be consulted.
	p := newTestPolicy(t, true,
		mustRule(t, "/secret", false, RuleScopeSpecific, 2),
		mustRule(t, "/", false, RuleScopeGlobal, 5),
	)

	d := p.Decide("/public")
	if !d.Allowed {
		t.Fatalf("matching section must suppress global rules, got %+v", d)
	}
	if !d.ByDefault() {
		t.Errorf("expected default allow, got %+v", d)
	}

	if got := p.Decide("/secret/file"); got.Allowed {
		t.Errorf("specific disallow must still apply, got %+v", got)
	}
}

func TestDecide_GlobalRulesApplyWithoutSpecificSection(t *testing.T) {
	// User-agent: FooBot blocks /secret; OtherBot falls through to *.
	p := NewPolicy(PolicyParams{
		Agent:        "OtherBot",
		MatchedAgent: false,
		Rules: []Rule{
			func() Rule { r, _ := NewDisallowRule("/", RuleScopeGlobal, 5, "Disallow: /"); return r }(),
		},
	})

	d := p.Decide("/secret")
	if d.Allowed {
		t.Fatalf("expected global disallow, got %+v", d)
	}
	if d.Line != 5 {
		t.Errorf("Line = %d, want 5", d.Line)
	}
}

func TestDecide_EmptyPathTreatedAsRoot(t *testing.T) {
	p := newTestPolicy(t, true, mustRule(t, "/", false, RuleScopeSpecific, 2))

	if d := p.Decide(""); d.Allowed {
		t.Errorf("empty path should evaluate as /, got %+v", d)
	}
}

func TestDecide_Idempotent(t *testing.T) {
	p := newTestPolicy(t, true,
		mustRule(t, "/a", false, RuleScopeSpecific, 2),
		mustRule(t, "/a/b", true, RuleScopeSpecific, 3),
	)

	first := p.Decide("/a/b/c")
	second := p.Decide("/a/b/c")
	if first != second {
		t.Errorf("Decide not idempotent: %+v then %+v", first, second)
	}
}

func TestCrawlDelay_SpecificOverGlobal(t *testing.T) {
	p := NewPolicy(PolicyParams{
		Agent:            "FooBot",
		SpecificDelay:    2 * time.Second,
		HasSpecificDelay: true,
		GlobalDelay:      10 * time.Second,
		HasGlobalDelay:   true,
	})
	if d, ok := p.CrawlDelay(); !ok || d != 2*time.Second {
		t.Errorf("CrawlDelay() = %v, %v; want 2s, true", d, ok)
	}

	p = NewPolicy(PolicyParams{
		Agent:          "FooBot",
		GlobalDelay:    10 * time.Second,
		HasGlobalDelay: true,
	})
	if d, ok := p.CrawlDelay(); !ok || d != 10*time.Second {
		t.Errorf("CrawlDelay() = %v, %v; want 10s, true", d, ok)
	}

	p = NewPolicy(PolicyParams{Agent: "FooBot"})
	if _, ok := p.CrawlDelay(); ok {
		t.Errorf("CrawlDelay() reported a delay with none parsed")
	}
}
