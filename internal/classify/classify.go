// Package classify maps free-text record categories to visual classes using
// an ordered rule table. The first matching rule wins, so the order of the
// table is part of the policy.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// VisualClass is the style bucket a record is drawn with.
type VisualClass struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Match kinds understood by NewResolver.
const (
	MatchContains = "contains"
	MatchRegex    = "regex"
)

// Rule assigns Class to categories matching Pattern.
type Rule struct {
	Match   string
	Pattern string
	Class   VisualClass
}

type compiledRule struct {
	contains string
	re       *regexp.Regexp
	class    VisualClass
}

func (r compiledRule) matches(category string) bool {
	if r.re != nil {
		return r.re.MatchString(category)
	}
	return strings.Contains(strings.ToLower(category), r.contains)
}

// Resolver evaluates rules top to bottom.
type Resolver struct {
	rules    []compiledRule
	fallback VisualClass
}

// NewResolver compiles rules in the given order. "contains" rules compare
// case-insensitively; "regex" rules use Go regexp syntax as written.
func NewResolver(rules []Rule, fallback VisualClass) (*Resolver, error) {
	r := &Resolver{fallback: fallback}
	for i, rule := range rules {
		if rule.Pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		cr := compiledRule{class: rule.Class}
		switch strings.ToLower(rule.Match) {
		case MatchContains, "":
			cr.contains = strings.ToLower(rule.Pattern)
		case MatchRegex:
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d: compile %q: %w", i, rule.Pattern, err)
			}
			cr.re = re
		default:
			return nil, fmt.Errorf("rule %d: unknown match kind %q", i, rule.Match)
		}
		r.rules = append(r.rules, cr)
	}
	return r, nil
}

// Classify returns the class of the first rule matching category, or the
// default class when category is empty or nothing matches.
func (r *Resolver) Classify(category string) VisualClass {
	if strings.TrimSpace(category) == "" {
		return r.fallback
	}
	for _, rule := range r.rules {
		if rule.matches(category) {
			return rule.class
		}
	}
	return r.fallback
}

// Default returns the fallback class.
func (r *Resolver) Default() VisualClass { return r.fallback }

// Classes lists the distinct classes in rule order followed by the default,
// suitable for a legend.
func (r *Resolver) Classes() []VisualClass {
	seen := make(map[VisualClass]bool)
	var out []VisualClass
	for _, rule := range r.rules {
		if !seen[rule.class] {
			seen[rule.class] = true
			out = append(out, rule.class)
		}
	}
	if !seen[r.fallback] {
		out = append(out, r.fallback)
	}
	return out
}
