package highlight

import "testing"

func TestFlatTranslatorBasic(t *testing.T) {
	input := []Span{s(1, 0, 5), s(2, 5, 10)}
	want := []HighlightEvent{
		StartEvent(1), SourceEvent(0, 5), EndEvent(),
		StartEvent(2), SourceEvent(5, 10), EndEvent(),
	}
	assertEvents(t, NewFlatTranslator(input).Collect(), want)
}

func TestFlatTranslatorDropsEmptySpans(t *testing.T) {
	input := []Span{s(1, 0, 0), s(2, 0, 5)}
	want := []HighlightEvent{StartEvent(2), SourceEvent(0, 5), EndEvent()}
	assertEvents(t, NewFlatTranslator(input).Collect(), want)
}

func TestFlatTranslatorPanicsOnOverlap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for overlapping flat input")
		}
	}()
	NewFlatTranslator([]Span{s(1, 0, 5), s(2, 3, 8)})
}

func TestFlatTranslatorMatchesTranslatorOnDisjointInput(t *testing.T) {
	spans := []Span{s(1, 0, 3), s(2, 3, 7), s(3, 10, 15)}
	flatEvents := NewFlatTranslator(append([]Span(nil), spans...)).Collect()
	generalEvents := collectTranslated(t, append([]Span(nil), spans...))

	flatSet := HighlightSetFromEvents(flatEvents)
	generalSet := HighlightSetFromEvents(generalEvents)
	if !flatSet.Equal(generalSet) {
		t.Fatalf("flat and general translators disagree on disjoint input")
	}
}
