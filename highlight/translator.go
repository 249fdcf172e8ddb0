package highlight

import "sort"

// Translator resolves a slice of possibly overlapping, arbitrary-depth
// spans into a well-formed HighlightEvent stream. Spans must already be
// sorted by Span.Less (NewTranslator checks this in debug builds);
// Translator mutates the slice in place while it translates, so callers
// must not reuse it afterward.
//
// Translator is a pull iterator: call Next until it reports false.
type Translator struct {
	spans    []Span
	index    int
	queue    []HighlightEvent
	openEnds []uint32 // descending; earliest end at the tail, cheapest to pop
	cursor   uint32
}

// NewTranslator creates a Translator over spans.
func NewTranslator(spans []Span) *Translator {
	assertSorted(spans)
	return &Translator{spans: spans}
}

func assertSorted(spans []Span) {
	if !debugChecks {
		return
	}
	for i := 1; i < len(spans); i++ {
		debugAssert(spans[i-1].LessEq(spans[i]), "highlight: spans not sorted at index %d: %+v then %+v", i, spans[i-1], spans[i])
	}
}

// startSpan opens span: queues its Start event and records its end so it
// can be closed later.
func (t *Translator) startSpan(span Span) {
	debugAssert(span.Start <= span.End, "highlight: span has start after end: %+v", span)
	t.queue = append(t.queue, StartEvent(span.Scope))
	t.openEnds = append(t.openEnds, span.End)
}

// emitSpanEnd advances the cursor to end, closing whatever was open there.
// It returns a Source event covering the gap since the last emitted
// position, queuing the matching End for the caller to pick up next, or
// just the End directly if the gap is empty.
func (t *Translator) emitSpanEnd(end uint32) HighlightEvent {
	start := t.cursor
	t.cursor = end
	if start != end {
		debugAssert(start < end, "highlight: cursor moved backwards")
		t.queue = append(t.queue, EndEvent())
		return SourceEvent(start, end)
	}
	return EndEvent()
}

// partitionSpansAt splits every consecutive span from t.index that starts
// at the current cursor and ends at or after intersect: the left half
// [start, intersect) is opened immediately, and the right half is left in
// place with Start rewritten to intersect, to be reopened once the cursor
// reaches it. The spans following the partitioned block that sort at or
// before the block's new start (by Span.LessEq) are rotated in front of it,
// so the slice from t.index on stays in sorted order.
func (t *Translator) partitionSpansAt(intersect uint32) {
	firstPartitioned := t.spans[t.index]

	i := t.index
	for i < len(t.spans) {
		span := t.spans[i]
		if span.Start != t.cursor || span.End < intersect {
			break
		}
		partitioned := span
		partitioned.End = intersect
		t.spans[i].Start = intersect
		t.startSpan(partitioned)
		i++
	}
	numPartitioned := i - t.index

	intersectSpan := firstPartitioned
	intersectSpan.Start = intersect

	numToResort := 0
	for j := i; j < len(t.spans); j++ {
		if !t.spans[j].LessEq(intersectSpan) {
			break
		}
		numToResort++
	}

	if numToResort != 0 {
		firstSorted := i + numToResort
		rotateLeft(t.spans[t.index:firstSorted], numPartitioned)
	}
}

// rotateLeft rotates s left by k positions using a scratch buffer, the
// standard substitute in languages without an in-place vector rotation.
func rotateLeft(s []Span, k int) {
	if k <= 0 || k >= len(s) {
		return
	}
	scratch := make([]Span, k)
	copy(scratch, s[:k])
	copy(s, s[k:])
	copy(s[len(s)-k:], scratch)
}

// Next returns the next event in the stream, or (zero, false) once
// exhausted.
func (t *Translator) Next() (HighlightEvent, bool) {
	if len(t.queue) > 0 {
		ev := t.queue[0]
		t.queue = t.queue[1:]
		return ev, true
	}

	if t.index == len(t.spans) {
		if len(t.openEnds) == 0 {
			return HighlightEvent{}, false
		}
		end := t.openEnds[len(t.openEnds)-1]
		t.openEnds = t.openEnds[:len(t.openEnds)-1]
		return t.emitSpanEnd(end), true
	}

	span := t.spans[t.index]

	var needsPartition bool
	var intersect uint32
	if len(t.openEnds) > 0 {
		end := t.openEnds[len(t.openEnds)-1]
		if span.Start >= end {
			t.openEnds = t.openEnds[:len(t.openEnds)-1]
			return t.emitSpanEnd(end), true
		}
		if span.End > end {
			needsPartition = true
			intersect = end
		}
	}

	start := t.cursor
	t.cursor = span.Start
	if span.Start != start && len(t.openEnds) > 0 {
		debugAssert(start < span.Start, "highlight: cursor moved backwards")
		return SourceEvent(start, span.Start), true
	}

	if needsPartition {
		t.partitionSpansAt(intersect)
	}

	for t.index < len(t.spans) && t.spans[t.index].Start == t.cursor {
		t.startSpan(t.spans[t.index])
		t.index++
	}

	sort.Slice(t.openEnds, func(i, j int) bool { return t.openEnds[i] > t.openEnds[j] })

	debugAssert(len(t.queue) > 0, "highlight: translator step produced no event")
	ev := t.queue[0]
	t.queue = t.queue[1:]
	return ev, true
}

// Collect drains the translator into a slice, a convenience for tests and
// small inputs.
func (t *Translator) Collect() []HighlightEvent {
	var events []HighlightEvent
	for {
		ev, ok := t.Next()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}
