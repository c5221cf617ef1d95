package auth

import "strings"

// RequiresAuth reports whether a request path needs authentication given
// an exclusion list. An empty path or an empty list always requires auth.
//
// A rule ending in "*" excludes every path carrying the rule's prefix;
// when several wildcard rules could match, the first one in the list wins.
// Any other rule is an exact match, checked against both the path and the
// path with a trailing slash appended.
func RequiresAuth(path string, excluded []string) bool {
	if path == "" {
		return true
	}
	if len(excluded) == 0 {
		return true
	}

	for _, rule := range excluded {
		if strings.HasSuffix(rule, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(rule, "*")) {
				return false
			}
		}
	}

	normalized := path
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	for _, rule := range excluded {
		if rule == path || rule == normalized {
			return false
		}
	}

	return true
}

// Matcher holds the exclusion rules supplied once at startup.
type Matcher struct {
	excluded []string
}

func NewMatcher(excluded []string) *Matcher {
	rules := make([]string, len(excluded))
	copy(rules, excluded)
	return &Matcher{excluded: rules}
}

func (m *Matcher) RequiresAuth(path string) bool {
	return RequiresAuth(path, m.excluded)
}
