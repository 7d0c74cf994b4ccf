// Package domain contains the core types shared across the classification
// service: the compiled rule catalog and the ingestion/processed records
// that flow through it.
package domain

import "github.com/jonesrussell/brandquery/internal/query"

// BrandRule is an immutable compiled rule: a catalog row whose Query text
// has been parsed into an AST. Created once at load time, never mutated.
type BrandRule struct {
	Topic             string
	SubTopic          string
	QueryName         string
	InternalID        string
	OriginalQueryText string
	AST               *query.Node

	// RequiredLiterals and LiteralsSafe cache query.RequiredLiterals(AST)
	// for the prefilter index; LiteralsSafe false means this rule can
	// never be skipped by the prefilter and must always be evaluated.
	RequiredLiterals []string
	LiteralsSafe     bool
}

// Classification is the (topic, subTopic, queryName, internalId) tuple of
// the rule that matched.
type Classification struct {
	Topic      string `json:"topic"`
	SubTopic   string `json:"subTopic"`
	QueryName  string `json:"queryName"`
	InternalID string `json:"internalId"`
}

// ClassificationResult is the outcome of classifying a piece of text.
type ClassificationResult struct {
	Matched        bool            `json:"matched"`
	Classification *Classification `json:"classification"`
}
