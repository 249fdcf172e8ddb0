// Package highlight resolves overlapping, arbitrary-depth highlight spans
// into a well-formed stream of highlight events, and back-checks that
// resolution with a per-byte bitset.
//
// A well-formed HighlightEvent stream satisfies four invariants:
//
//  1. Start and End events are balanced, and at any prefix of the stream
//     the number of Start events seen is >= the number of End events.
//  2. No Source event has Start == End.
//  3. Two Source events never appear back to back; at least one Start or
//     End always separates them, and successive Source windows never
//     overlap or move backwards.
//  4. Between any two Source events there is at least one Start or End.
package highlight

import "sort"

// Scope is an opaque highlight category assigned by whatever produced the
// span: a tree-sitter capture, a lexer token kind, a diagnostic severity.
type Scope = uint32

// Span is a half-open byte range [Start, End) tagged with a Scope. Spans
// may nest or overlap arbitrarily; Translator resolves that into a linear
// event stream.
type Span struct {
	Scope Scope
	Start uint32
	End   uint32
}

// Less reports whether s sorts before other under the order Translator
// requires: start ascending, and on a tie, end descending, so that a wider
// span starting at the same byte as a narrower one sorts first and opens
// first.
func (s Span) Less(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End > other.End
}

// LessEq reports s.Less(other) || s == other under the same order.
func (s Span) LessEq(other Span) bool {
	return !other.Less(s)
}

func (s Span) empty() bool { return s.Start == s.End }

// SortSpans sorts spans in place into the order Translator and
// FlatTranslator require.
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Less(spans[j]) })
}
