package query

import "sort"

// Span is a half-open token-index interval [Start, End) where a
// subexpression matched.
type Span struct {
	Start int
	End   int
}

// spanDistance is the token gap between two spans; overlapping or
// touching spans have distance 0.
func spanDistance(a, b Span) int {
	if a.Start < b.End && b.Start < a.End {
		return 0
	}
	if a.End <= b.Start {
		return b.Start - a.End
	}
	return a.Start - b.End
}

// MergeSpans sorts spans by (start, end) and folds overlapping or
// adjacent-by-touch intervals into the minimal covering set.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
