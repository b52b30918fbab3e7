// Package manifest loads crawl-check manifests: declarative files listing
// which URLs a crawler expects to be allowed or denied by a robots.txt.
// YAML, JSON and TOML are supported, selected by file extension.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-robots/internal/robots/domain"
)

// Expectation is the outcome a check demands.
type Expectation string

const (
	// ExpectAllow requires the URL to be fetchable.
	ExpectAllow Expectation = "allow"
	// ExpectDeny requires the URL to be blocked.
	ExpectDeny Expectation = "deny"
)

// Check pairs one URL with its expected outcome.
type Check struct {
	URL    string
	Expect Expectation
}

// Manifest is a parsed crawl-check file.
type Manifest struct {
	Agent  string
	Checks []Check
}

// Load reads and validates a manifest file. The expected shape, in YAML:
//
//	agent: FooBot
//	checks:
//	  - url: https://example.com/public/
//	    expect: allow
//	  - url: https://example.com/private/
//	    expect: deny
func Load(path string) (*Manifest, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported manifest extension: %s", filepath.Ext(path))
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", path, err)
	}

	m := &Manifest{Agent: strings.TrimSpace(k.String("agent"))}
	if m.Agent == "" {
		return nil, fmt.Errorf("manifest %s missing 'agent'", path)
	}
	if !domain.IsValidUserAgent(m.Agent) {
		return nil, fmt.Errorf("manifest %s: agent %q is not a product token", path, m.Agent)
	}

	entries, err := checkEntries(k.Raw()["checks"])
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest %s has no checks", path)
	}

	for i, em := range entries {
		check, err := buildCheck(em)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: check %d: %w", path, i, err)
		}
		m.Checks = append(m.Checks, check)
	}

	return m, nil
}

// checkEntries normalizes the parser-dependent shape of the checks list.
// The YAML and JSON parsers produce []any, the TOML parser produces
// []map[string]any for arrays of tables.
func checkEntries(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, entry := range v {
			em, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("check %d is not a mapping", i)
			}
			out = append(out, em)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("'checks' must be a list")
	}
}

// buildCheck converts one raw koanf-parsed mapping into a Check.
func buildCheck(em map[string]any) (Check, error) {
	rawURL, _ := em["url"].(string)
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Check{}, fmt.Errorf("missing 'url'")
	}

	rawExpect, _ := em["expect"].(string)
	expect := Expectation(strings.ToLower(strings.TrimSpace(rawExpect)))
	switch expect {
	case ExpectAllow, ExpectDeny:
		// ok
	default:
		return Check{}, fmt.Errorf("'expect' must be %q or %q, got %q", ExpectAllow, ExpectDeny, rawExpect)
	}

	return Check{URL: rawURL, Expect: expect}, nil
}
