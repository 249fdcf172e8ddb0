package highlight

// EventKind tags the variant carried by a HighlightEvent.
type EventKind uint8

const (
	// EventStart opens a highlight; it stays open until a matching EventEnd.
	EventStart EventKind = iota
	// EventEnd closes the most recently opened, still-open highlight.
	EventEnd
	// EventSource asserts that every currently open highlight applies to
	// the byte range [Start, End).
	EventSource
)

// HighlightEvent is one entry of a well-formed event stream. Only the
// fields matching Kind are meaningful: Scope for EventStart, Start/End for
// EventSource.
type HighlightEvent struct {
	Kind  EventKind
	Scope Scope
	Start uint32
	End   uint32
}

// StartEvent opens a highlight of the given scope.
func StartEvent(scope Scope) HighlightEvent {
	return HighlightEvent{Kind: EventStart, Scope: scope}
}

// EndEvent closes the most recently opened highlight.
func EndEvent() HighlightEvent {
	return HighlightEvent{Kind: EventEnd}
}

// SourceEvent asserts the open highlight stack applies to [start, end).
func SourceEvent(start, end uint32) HighlightEvent {
	return HighlightEvent{Kind: EventSource, Start: start, End: end}
}

func (e HighlightEvent) IsStart() bool  { return e.Kind == EventStart }
func (e HighlightEvent) IsEnd() bool    { return e.Kind == EventEnd }
func (e HighlightEvent) IsSource() bool { return e.Kind == EventSource }
