package planner

import "strings"

// Matcher decides whether a free-text name hits a vocabulary term.
type Matcher interface {
	Match(text, term string) bool
}

// SubstringMatcher is a case-insensitive substring match. Empty terms never match.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(text, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), term)
}

func matchAny(m Matcher, text string, terms []string) (string, bool) {
	for _, t := range terms {
		if m.Match(text, t) {
			return t, true
		}
	}
	return "", false
}
