// Package normalize folds article and query text into the lowercase,
// diacritic-free, whitespace-collapsed form the match engine operates on,
// and splits that form into match tokens.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes text to NFD, strips combining marks, and
// recomposes to NFC so "café" and "cafe" fold to the same base letters.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, folds diacritics, replaces every character
// outside [a-z0-9@#\s] with a space, and collapses whitespace runs.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	folded, _, err := transform.String(foldDiacritics, lower)
	if err != nil {
		folded = lower
	}
	return collapseAndFilter(folded)
}

func collapseAndFilter(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if isMatchChar(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func isMatchChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '@' || r == '#'
}

// Tokenize normalizes text and splits it into match tokens, preserving a
// leading '@' or '#' as semantically significant and discarding trailing
// '@'/'#' noise elsewhere.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	rawTokens := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(rawTokens))
	for _, raw := range rawTokens {
		if tok := cleanToken(raw); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func cleanToken(raw string) string {
	if raw == "@" || raw == "#" {
		return ""
	}
	if len(raw) > 1 && (raw[0] == '@' || raw[0] == '#') {
		return raw
	}
	return strings.TrimRight(raw, "@#")
}
