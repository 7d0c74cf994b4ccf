package query

// RequiredLiterals extracts the token literals that must be present in
// an article for ast to have any chance of a positive match, for use by
// a prefilter that skips full evaluation. safe is false when the tree
// contains a WILDCARD leaf outside a NOT subtree - a wildcard needs no
// specific literal token, so no sound "at least one of these" set can
// be computed and the rule must always be evaluated in full - or when
// an OR operand reaches a NOT without passing through an intervening
// AND (see orReachesNot).
func RequiredLiterals(ast *Node) (literals []string, safe bool) {
	seen := make(map[string]struct{})
	if !collectLiterals(ast, false, seen) {
		return nil, false
	}
	literals = make([]string, 0, len(seen))
	for l := range seen {
		literals = append(literals, l)
	}
	return literals, true
}

func collectLiterals(node *Node, inNot bool, out map[string]struct{}) bool {
	if node == nil {
		return true
	}
	switch node.Kind {
	case KindTerm:
		if !inNot {
			out[node.Value] = struct{}{}
		}
		return true
	case KindPhrase:
		if !inNot {
			for _, t := range node.Tokens {
				out[t] = struct{}{}
			}
		}
		return true
	case KindWildcard:
		return inNot
	case KindNot:
		return collectLiterals(node.Child, true, out)
	case KindOr:
		// evaluatePositive always reports NOT's operand as Matched:true,
		// so an OR with a NOT-reaching operand can be positively
		// satisfied without any literal from either side present (e.g.
		// "brand OR NOT recall" matches whenever "recall" is absent,
		// regardless of "brand"). AND has this problem only when both of
		// its operands reach a NOT: otherwise it still requires the other
		// operand's own literals to hold, so a NOT nested under such an
		// AND does not make this OR unsafe.
		if orReachesNot(node.Left) || orReachesNot(node.Right) {
			return false
		}
		left := collectLiterals(node.Left, inNot, out)
		right := collectLiterals(node.Right, inNot, out)
		return left && right
	case KindAnd, KindNear:
		left := collectLiterals(node.Left, inNot, out)
		right := collectLiterals(node.Right, inNot, out)
		return left && right
	default:
		return true
	}
}

// orReachesNot reports whether node contains a NOT reachable through OR
// or NEAR combinators without passing through an intervening AND. An AND
// stops the search unless both of its operands reach a NOT: one operand
// free of NOT still requires its own literals, but AND(NOT a, NOT b) is
// positively satisfied with no literal present at all.
func orReachesNot(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case KindNot:
		return true
	case KindOr, KindNear:
		return orReachesNot(node.Left) || orReachesNot(node.Right)
	case KindAnd:
		return orReachesNot(node.Left) && orReachesNot(node.Right)
	default:
		return false
	}
}
