package highlight

import "sort"

// segment is an internal, already-disjoint interval with its full stack of
// open scopes (outermost first), used to rebuild an event stream once
// Merge has decided what belongs where.
type segment struct {
	start, end uint32
	stack      []Scope
}

// decodeIntervals replays a well-formed event stream into the ordered list
// of Source windows it produces, each tagged with the full scope stack
// open during it. Zero-width Start/End pairs that never reach a Source
// event vanish here, same as they would from a HighlightSet.
func decodeIntervals(events []HighlightEvent) []segment {
	var stack []Scope
	var segs []segment
	for _, ev := range events {
		switch ev.Kind {
		case EventStart:
			stack = append(stack, ev.Scope)
		case EventEnd:
			stack = stack[:len(stack)-1]
		case EventSource:
			if ev.Start < ev.End {
				snap := make([]Scope, len(stack))
				copy(snap, stack)
				segs = append(segs, segment{start: ev.Start, end: ev.End, stack: snap})
			}
		}
	}
	return segs
}

// trailingZeroWidthOverlayPairs finds zero-width Start/End pairs in the
// overlay stream that come after the overlay's last Source event and sit at
// or after the primary's last Source end. They carry no span but their
// presence is how a producer signals "I reached the end of my own coverage
// here"; Merge preserves them verbatim rather than letting decodeIntervals
// silently drop them.
func trailingZeroWidthOverlayPairs(overlay []HighlightEvent, coverageEnd uint32) []Scope {
	lastSource := -1
	for i, ev := range overlay {
		if ev.Kind == EventSource {
			lastSource = i
		}
	}
	var cursor uint32
	var pairs []Scope
	for i, ev := range overlay {
		switch ev.Kind {
		case EventSource:
			cursor = ev.End
		case EventStart:
			if i > lastSource && i+1 < len(overlay) && overlay[i+1].Kind == EventEnd && cursor >= coverageEnd {
				pairs = append(pairs, ev.Scope)
			}
		}
	}
	return pairs
}

// splitPrimaryInterval divides p at every boundary where an overlapping
// overlay interval starts or ends, tagging each resulting sub-range with
// primary's stack followed by the overlapping overlay's stack (overlay
// always nests inside primary). If p is primary's last interval, overlay
// intervals that were still open when p ended get one more trailing,
// overlay-only segment past p.end: the "let it finish" concession.
func splitPrimaryInterval(p segment, overlays []segment, isLastPrimary bool) []segment {
	var overlapping []segment
	for _, o := range overlays {
		if o.start < p.end && o.end > p.start {
			overlapping = append(overlapping, o)
		}
	}

	bounds := []uint32{p.start, p.end}
	for _, o := range overlapping {
		if o.start > p.start && o.start < p.end {
			bounds = append(bounds, o.start)
		}
		if o.end > p.start && o.end < p.end {
			bounds = append(bounds, o.end)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	dedup := bounds[:1]
	for _, b := range bounds[1:] {
		if b != dedup[len(dedup)-1] {
			dedup = append(dedup, b)
		}
	}
	bounds = dedup

	var out []segment
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		stack := append([]Scope(nil), p.stack...)
		for _, o := range overlapping {
			if o.start <= start && o.end >= end {
				stack = append(stack, o.stack...)
			}
		}
		out = append(out, segment{start: start, end: end, stack: stack})
	}

	if isLastPrimary {
		for _, o := range overlapping {
			if o.end > p.end {
				out = append(out, segment{start: p.end, end: o.end, stack: append([]Scope(nil), o.stack...)})
			}
		}
	}
	return out
}

func stacksEqual(a, b []Scope) bool {
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

// coalesceSegments merges adjacent, touching segments that carry the same
// stack, so the encoder never has to emit two Source events back to back.
func coalesceSegments(segs []segment) []segment {
	if len(segs) == 0 {
		return segs
	}
	out := segs[:1]
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if last.end == s.start && stacksEqual(last.stack, s.stack) {
			last.end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

// encodeSegments rebuilds a well-formed event stream from an ordered,
// disjoint segment list, diffing each segment's stack against the
// previously open one so only the scopes that actually change get a
// Start/End event.
func encodeSegments(segs []segment) []HighlightEvent {
	var events []HighlightEvent
	var open []Scope
	haveCursor := false
	var cursor uint32

	for _, seg := range segs {
		if seg.start >= seg.end {
			continue
		}
		if !haveCursor || seg.start != cursor {
			for i := len(open) - 1; i >= 0; i-- {
				events = append(events, EndEvent())
			}
			open = open[:0]
		}

		target := seg.stack
		common := 0
		for common < len(open) && common < len(target) && open[common] == target[common] {
			common++
		}
		for i := len(open) - 1; i >= common; i-- {
			events = append(events, EndEvent())
		}
		open = open[:common]
		for i := common; i < len(target); i++ {
			events = append(events, StartEvent(target[i]))
			open = append(open, target[i])
		}

		events = append(events, SourceEvent(seg.start, seg.end))
		cursor = seg.end
		haveCursor = true
	}

	for i := len(open) - 1; i >= 0; i-- {
		events = append(events, EndEvent())
	}
	return events
}

// Merge interleaves a primary and an overlay event stream (for example,
// syntax highlighting and a selection or diagnostic overlay), so that
// overlay scopes nest inside primary scopes wherever they overlap. Overlay
// content outside primary's coverage is discarded, except for an overlay
// scope still open exactly when primary's last Source ends: that one is
// allowed to continue past primary's end with its own scope alone.
//
// Unlike Translator and FlatTranslator, Merge is not a pull iterator: it
// reads both streams in full up front, since deciding where overlay gets
// clipped requires knowing primary's total extent.
func Merge(primary, overlay []HighlightEvent) []HighlightEvent {
	primaryIntervals := decodeIntervals(primary)
	if len(primaryIntervals) == 0 {
		return append([]HighlightEvent(nil), primary...)
	}
	overlayIntervals := decodeIntervals(overlay)
	coverageEnd := primaryIntervals[len(primaryIntervals)-1].end

	var segs []segment
	for _, p := range primaryIntervals {
		segs = append(segs, splitPrimaryInterval(p, overlayIntervals, p.end == coverageEnd)...)
	}
	segs = coalesceSegments(segs)
	events := encodeSegments(segs)

	for _, scope := range trailingZeroWidthOverlayPairs(overlay, coverageEnd) {
		events = append(events, StartEvent(scope), EndEvent())
	}
	return events
}
