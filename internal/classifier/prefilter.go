package classifier

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/brandquery/internal/domain"
)

// prefilterIndex is a sound over-approximation built from every safe
// rule's required literals: a single Aho-Corasick matcher scans the
// article once, and a rule is skipped only when none of its required
// literals were found - evaluating it in full could never have matched.
type prefilterIndex struct {
	matcher    *ahocorasick.Matcher
	literalIDs map[string]int
}

func buildPrefilterIndex(rules []domain.BrandRule) *prefilterIndex {
	literalIDs := make(map[string]int)
	var dictionary []string
	for _, r := range rules {
		if !r.LiteralsSafe {
			continue
		}
		for _, lit := range r.RequiredLiterals {
			if _, ok := literalIDs[lit]; !ok {
				literalIDs[lit] = len(dictionary)
				dictionary = append(dictionary, lit)
			}
		}
	}
	if len(dictionary) == 0 {
		return &prefilterIndex{literalIDs: literalIDs}
	}
	return &prefilterIndex{
		matcher:    ahocorasick.NewStringMatcher(dictionary),
		literalIDs: literalIDs,
	}
}

// presentLiterals returns the set of literal IDs that occur anywhere in
// T's joined text.
func (p *prefilterIndex) presentLiterals(T []string) map[int]struct{} {
	present := make(map[int]struct{})
	if p.matcher == nil {
		return present
	}
	for _, id := range p.matcher.Match([]byte(strings.Join(T, " "))) {
		present[id] = struct{}{}
	}
	return present
}

// mayMatch reports whether rule could possibly match given the literals
// present in the article. A rule with no safe literal set (LiteralsSafe
// false, e.g. it contains a bare wildcard) always requires full evaluation.
func (p *prefilterIndex) mayMatch(rule domain.BrandRule, present map[int]struct{}) bool {
	if !rule.LiteralsSafe {
		return true
	}
	if len(rule.RequiredLiterals) == 0 {
		// Negation-only rule: no positive literal is required at all.
		return true
	}
	for _, lit := range rule.RequiredLiterals {
		if id, ok := p.literalIDs[lit]; ok {
			if _, found := present[id]; found {
				return true
			}
		}
	}
	return false
}
