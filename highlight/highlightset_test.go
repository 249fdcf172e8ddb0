package highlight

import "testing"

func TestHighlightSetFromSpansBasic(t *testing.T) {
	set := HighlightSetFromSpans([]Span{s(0, 0, 3), s(1, 1, 4)})
	if set.Len() != 4 {
		t.Fatalf("len = %d, want 4", set.Len())
	}
	want := [][]uint32{{0}, {0, 1}, {0, 1}, {1}}
	for i, w := range want {
		got := set.At(i)
		if !uint32SlicesEqual(got, w) {
			t.Errorf("position %d: got %v, want %v", i, got, w)
		}
	}
}

func TestHighlightSetTrimsTrailingZeros(t *testing.T) {
	set := HighlightSetFromEvents([]HighlightEvent{StartEvent(0), SourceEvent(0, 2), EndEvent(), SourceEvent(2, 5)})
	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2 after trimming", set.Len())
	}
}

func TestHighlightSetEqualIgnoresTrailingLengthDifferences(t *testing.T) {
	a := HighlightSetFromSpans([]Span{s(0, 0, 2)})
	b := HighlightSetFromEvents([]HighlightEvent{StartEvent(0), SourceEvent(0, 2), EndEvent(), SourceEvent(2, 4)})
	if !a.Equal(b) {
		t.Fatalf("expected equal sets")
	}
}

func TestHighlightSetFromEventsTracksNesting(t *testing.T) {
	events := []HighlightEvent{
		StartEvent(1), SourceEvent(0, 3),
		StartEvent(2), SourceEvent(3, 6), EndEvent(),
		SourceEvent(6, 10), EndEvent(),
	}
	set := HighlightSetFromEvents(events)
	want := HighlightSetFromSpans([]Span{s(1, 0, 10), s(2, 3, 6)})
	if !set.Equal(want) {
		t.Fatalf("event-derived set does not match span-derived set")
	}
}

func TestHighlightSetPanicsOnScopeOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for scope >= 128")
		}
	}()
	HighlightSetFromSpans([]Span{s(128, 0, 1)})
}

func uint32SlicesEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
