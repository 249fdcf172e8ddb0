package highlight

import "testing"

// FuzzTranslatorInvariants checks that Translator never panics on
// adversarial span lists and always produces a well-formed stream whose
// HighlightSet matches the input spans', mirroring how
// FuzzGoParseDoesNotPanic drives the parser with raw fuzz bytes.
func FuzzTranslatorInvariants(f *testing.F) {
	f.Add([]byte{1, 0, 5, 2, 6, 10})
	f.Add([]byte{1, 0, 10, 2, 3, 6})
	f.Add([]byte{1, 0, 6, 2, 0, 6, 3, 4, 10, 4, 4, 10, 5, 4, 8})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		spans := spansFromFuzzBytes(data)
		SortSpans(spans)
		events := NewTranslator(append([]Span(nil), spans...)).Collect()
		checkWellFormed(t, events)
		if !HighlightSetFromSpans(spans).Equal(HighlightSetFromEvents(events)) {
			t.Fatalf("HighlightSet mismatch for input %+v", spans)
		}
	})
}

// FuzzFlatTranslatorEquivalence checks that on disjoint input,
// FlatTranslator and Translator produce streams with the same HighlightSet.
func FuzzFlatTranslatorEquivalence(f *testing.F) {
	f.Add([]byte{1, 0, 5, 2, 5, 10})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		spans := disjointSpansFromFuzzBytes(data)
		flat := NewFlatTranslator(append([]Span(nil), spans...)).Collect()
		general := NewTranslator(append([]Span(nil), spans...)).Collect()
		checkWellFormed(t, flat)
		checkWellFormed(t, general)
		if !HighlightSetFromEvents(flat).Equal(HighlightSetFromEvents(general)) {
			t.Fatalf("flat/general disagreement for input %+v", spans)
		}
	})
}

// spansFromFuzzBytes decodes arbitrary fuzz bytes into a bounded span
// list: every three bytes become (scope, start, start+length), clamped to
// stay under HighlightSet's scope ceiling and a small file size.
func spansFromFuzzBytes(data []byte) []Span {
	var spans []Span
	for i := 0; i+2 < len(data) && len(spans) < 64; i += 3 {
		scope := Scope(data[i] % maxScope)
		start := uint32(data[i+1])
		length := uint32(data[i+2])
		spans = append(spans, Span{Scope: scope, Start: start, End: start + length})
	}
	return spans
}

func disjointSpansFromFuzzBytes(data []byte) []Span {
	spans := spansFromFuzzBytes(data)
	SortSpans(spans)
	var cursor uint32
	var out []Span
	haveCursor := false
	for _, sp := range spans {
		if haveCursor && sp.Start < cursor {
			continue
		}
		out = append(out, sp)
		cursor = sp.End
		haveCursor = true
	}
	return out
}

func checkWellFormed(t *testing.T, events []HighlightEvent) {
	t.Helper()
	depth := 0
	var lastSource *HighlightEvent
	openSinceLastSource := true
	for _, ev := range events {
		switch ev.Kind {
		case EventStart:
			depth++
			openSinceLastSource = true
		case EventEnd:
			depth--
			if depth < 0 {
				t.Fatalf("unbalanced End: depth went negative")
			}
			openSinceLastSource = true
		case EventSource:
			if ev.Start >= ev.End {
				t.Fatalf("zero-width or backwards Source event: %+v", ev)
			}
			if !openSinceLastSource {
				t.Fatalf("two consecutive Source events with nothing between them")
			}
			if lastSource != nil && !(lastSource.Start < ev.Start && lastSource.End <= ev.Start) {
				t.Fatalf("Source windows not monotone: %+v then %+v", *lastSource, ev)
			}
			cp := ev
			lastSource = &cp
			openSinceLastSource = false
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced Start/End: final depth %d", depth)
	}
}
