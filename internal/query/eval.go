package query

import "strings"

// Verdict is the outcome of evaluating a compiled rule against an
// article's token vector.
type Verdict struct {
	Matched bool
	Spans   []Span
}

// Evaluate runs the positive and forbidden passes over ast against T
// and produces the rule's final verdict, per the policy in spec §4.E.
func Evaluate(ast *Node, T []string) Verdict {
	if checkForbidden(ast, T) {
		return Verdict{Matched: false}
	}
	pos := evaluatePositive(ast, T)
	if pos.HasPositive {
		if !pos.Matched {
			return Verdict{Matched: false}
		}
		return Verdict{Matched: true, Spans: MergeSpans(pos.Spans)}
	}
	// Negation-only rule: no positive requirement fired, so nothing to
	// forbid either - the rule matches vacuously with no spans.
	return Verdict{Matched: true}
}

type positiveResult struct {
	Matched     bool
	Spans       []Span
	HasPositive bool
}

// evaluatePositive is the positive pass (spec §4.E): leaves produce
// spans, NOT is treated as neutral for conjunctions, AND/OR/NEAR
// combine their children by the stated boolean/proximity semantics.
func evaluatePositive(node *Node, T []string) positiveResult {
	switch node.Kind {
	case KindTerm:
		spans := matchTerm(node, T)
		return positiveResult{Matched: len(spans) > 0, Spans: spans, HasPositive: true}
	case KindWildcard:
		spans := matchWildcard(node, T)
		return positiveResult{Matched: len(spans) > 0, Spans: spans, HasPositive: true}
	case KindPhrase:
		spans := matchPhrase(node, T)
		return positiveResult{Matched: len(spans) > 0, Spans: spans, HasPositive: true}
	case KindNot:
		inner := evaluatePositive(node.Child, T)
		return positiveResult{Matched: true, HasPositive: inner.HasPositive}
	case KindAnd:
		l := evaluatePositive(node.Left, T)
		r := evaluatePositive(node.Right, T)
		spans := make([]Span, 0, len(l.Spans)+len(r.Spans))
		spans = append(spans, l.Spans...)
		spans = append(spans, r.Spans...)
		return positiveResult{
			Matched:     l.Matched && r.Matched,
			Spans:       spans,
			HasPositive: l.HasPositive || r.HasPositive,
		}
	case KindOr:
		l := evaluatePositive(node.Left, T)
		r := evaluatePositive(node.Right, T)
		var spans []Span
		if l.Matched {
			spans = append(spans, l.Spans...)
		}
		if r.Matched {
			spans = append(spans, r.Spans...)
		}
		return positiveResult{
			Matched:     l.Matched || r.Matched,
			Spans:       spans,
			HasPositive: l.HasPositive || r.HasPositive,
		}
	case KindNear:
		l := evaluatePositive(node.Left, T)
		r := evaluatePositive(node.Right, T)
		var spans []Span
		for _, ls := range l.Spans {
			for _, rs := range r.Spans {
				if spanDistance(ls, rs) <= node.Distance {
					spans = append(spans, Span{Start: min(ls.Start, rs.Start), End: max(ls.End, rs.End)})
				}
			}
		}
		return positiveResult{Matched: len(spans) > 0, Spans: spans, HasPositive: true}
	default:
		return positiveResult{}
	}
}

// checkForbidden walks the whole tree, structure-blind, looking for any
// NOT(c) whose child c has a positive match anywhere in the AST. This
// is the intentional global-exclusion policy documented in spec §9.
func checkForbidden(node *Node, T []string) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case KindNot:
		if evaluatePositive(node.Child, T).Matched {
			return true
		}
		return checkForbidden(node.Child, T)
	case KindAnd, KindOr, KindNear:
		return checkForbidden(node.Left, T) || checkForbidden(node.Right, T)
	default:
		return false
	}
}

// matchToken applies the per-token match rule shared by TERM and
// PHRASE: a prefixed value must match literally, an unprefixed value
// also matches its @/# mention/hashtag forms.
func matchToken(t, v string) bool {
	if hasSigil(v) {
		return t == v
	}
	return t == v || t == "@"+v || t == "#"+v
}

func hasSigil(s string) bool {
	return strings.HasPrefix(s, "@") || strings.HasPrefix(s, "#")
}

func matchTerm(node *Node, T []string) []Span {
	var spans []Span
	for i, t := range T {
		if matchToken(t, node.Value) {
			spans = append(spans, Span{Start: i, End: i + 1})
		}
	}
	return spans
}

func matchWildcardPrefix(t, p string) bool {
	if hasSigil(p) {
		return strings.HasPrefix(t, p)
	}
	return strings.HasPrefix(t, p) || strings.HasPrefix(t, "@"+p) || strings.HasPrefix(t, "#"+p)
}

func matchWildcard(node *Node, T []string) []Span {
	var spans []Span
	for i, t := range T {
		if matchWildcardPrefix(t, node.Value) {
			spans = append(spans, Span{Start: i, End: i + 1})
		}
	}
	return spans
}

func matchPhrase(node *Node, T []string) []Span {
	q := node.Tokens
	if len(q) == 0 {
		return nil
	}
	var spans []Span
	for i := 0; i+len(q) <= len(T); i++ {
		matched := true
		for j, qt := range q {
			if !matchToken(T[i+j], qt) {
				matched = false
				break
			}
		}
		if matched {
			spans = append(spans, Span{Start: i, End: i + len(q)})
		}
	}
	return spans
}
