package auth

import "strings"

// EndpointRule is a declarative method + path-template rule. Rules are
// loaded once from configuration and consulted per request, both for
// exclusions (skip authentication entirely) and for endpoint authorization
// (required authorities, authenticated flag).
type EndpointRule struct {
	// Method matches the HTTP method, "" or "*" matches any
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Path is a template of /-separated segments. "*" matches exactly one
	// segment, a trailing "**" matches any remainder including none.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Authorities required to pass this rule, any-of, case sensitive
	Authorities []Authority `json:"authorities,omitempty" yaml:"authorities,omitempty"`
	// Authenticated requires a resolved user even when Authorities is empty
	Authenticated bool `json:"authenticated,omitempty" yaml:"authenticated,omitempty"`
}

// Matches reports whether the rule applies to the given method and path.
func (r EndpointRule) Matches(method, path string) bool {
	if r.Method != "" && r.Method != "*" && !strings.EqualFold(r.Method, method) {
		return false
	}
	return matchPathTemplate(r.Path, path)
}

// RuleSet is an ordered list of endpoint rules, first match wins.
type RuleSet []EndpointRule

// Match returns the first rule matching method and path.
func (rs RuleSet) Match(method, path string) (EndpointRule, bool) {
	for _, rule := range rs {
		if rule.Matches(method, path) {
			return rule, true
		}
	}
	return EndpointRule{}, false
}

// Excludes reports whether any rule matches, which for exclusion lists means
// the authentication pipeline is skipped for this request.
func (rs RuleSet) Excludes(method, path string) bool {
	_, ok := rs.Match(method, path)
	return ok
}

func matchPathTemplate(pattern, path string) bool {
	if pattern == "" {
		return false
	}

	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	for i, seg := range patternSegs {
		if seg == "**" {
			// only honored as the final segment
			return i == len(patternSegs)-1
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg == "*" {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}

	return len(patternSegs) == len(pathSegs)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
