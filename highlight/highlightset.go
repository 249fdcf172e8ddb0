package highlight

import "math/bits"

// maxScope is the highest scope ID HighlightSet can record, fixed by its
// 128-bit-per-position layout.
const maxScope = 128

// mask128 is a 128-bit bitset of active scopes, split across two uint64
// words since Go has no native 128-bit integer.
type mask128 struct {
	lo, hi uint64
}

func scopeBit(scope Scope) mask128 {
	debugAssert(scope < maxScope, "highlight: scope %d exceeds HighlightSet's %d-scope ceiling", scope, maxScope)
	if scope < 64 {
		return mask128{lo: 1 << scope}
	}
	return mask128{hi: 1 << (scope - 64)}
}

func (m mask128) or(other mask128) mask128 {
	return mask128{lo: m.lo | other.lo, hi: m.hi | other.hi}
}

func (m mask128) isZero() bool { return m.lo == 0 && m.hi == 0 }

func (m mask128) members() []uint32 {
	var out []uint32
	for lo := m.lo; lo != 0; lo &= lo - 1 {
		out = append(out, uint32(bits.TrailingZeros64(lo)))
	}
	for hi := m.hi; hi != 0; hi &= hi - 1 {
		out = append(out, uint32(bits.TrailingZeros64(hi))+64)
	}
	return out
}

// HighlightSet records, for every byte position it covers, the set of
// scopes active at that byte. It exists to prove that two representations
// of the same highlighting (raw spans, or a translated event stream) agree
// everywhere: build one from each side and compare with Equal.
type HighlightSet struct {
	masks []mask128
}

func (s *HighlightSet) insert(start, end uint32, scopes mask128) {
	if start == end {
		return
	}
	if uint32(len(s.masks)) < end {
		grown := make([]mask128, end)
		copy(grown, s.masks)
		s.masks = grown
	}
	for i := start; i < end; i++ {
		s.masks[i] = s.masks[i].or(scopes)
	}
}

// trim drops trailing positions with no scopes active, so that two sets
// covering the same prefix of highlighted bytes but different total file
// lengths still compare equal.
func (s *HighlightSet) trim() {
	for len(s.masks) > 0 && s.masks[len(s.masks)-1].isZero() {
		s.masks = s.masks[:len(s.masks)-1]
	}
}

// HighlightSetFromSpans builds a HighlightSet directly from spans. Scope
// IDs must fit in [0, 128).
func HighlightSetFromSpans(spans []Span) HighlightSet {
	var s HighlightSet
	for _, span := range spans {
		s.insert(span.Start, span.End, scopeBit(span.Scope))
	}
	s.trim()
	return s
}

// HighlightSetFromEvents builds a HighlightSet by replaying a
// HighlightEvent stream: Start pushes a scope, End pops it, and Source
// records the union of whatever is currently on the stack over its range.
func HighlightSetFromEvents(events []HighlightEvent) HighlightSet {
	var s HighlightSet
	var stack []Scope
	for _, ev := range events {
		switch ev.Kind {
		case EventStart:
			stack = append(stack, ev.Scope)
		case EventEnd:
			stack = stack[:len(stack)-1]
		case EventSource:
			var active mask128
			for _, sc := range stack {
				active = active.or(scopeBit(sc))
			}
			s.insert(ev.Start, ev.End, active)
		}
	}
	s.trim()
	return s
}

// Equal reports whether s and other record the same scopes at every
// position.
func (s HighlightSet) Equal(other HighlightSet) bool {
	if len(s.masks) != len(other.masks) {
		return false
	}
	for i := range s.masks {
		if s.masks[i] != other.masks[i] {
			return false
		}
	}
	return true
}

// Len returns the number of byte positions this set covers, after
// trimming trailing empty positions.
func (s HighlightSet) Len() int { return len(s.masks) }

// At returns the sorted scope IDs active at byte position i.
func (s HighlightSet) At(i int) []uint32 {
	if i < 0 || i >= len(s.masks) {
		return nil
	}
	return s.masks[i].members()
}
