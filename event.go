package hookstorm

// Event is the value delivered to handlers when a hook point fires.
// It is a small immutable value: construct it with NewEvent, attach a
// payload with WithData, then hand it to Registry.Trigger. The registry
// never retains events after dispatch returns.
type Event struct {
	// Kind names the hook point this event describes. Any string is
	// valid, including the empty string; the Kind* constants cover the
	// common lifecycle points.
	Kind string

	// Data is an optional structured payload, opaque to the registry.
	// By convention it is a JSON-like tree (nil, bool, float64, string,
	// []any, or map[string]any), but the registry never inspects it.
	Data any
}

// NewEvent returns an event of the given kind with no payload.
func NewEvent(kind string) Event {
	return Event{Kind: kind}
}

// WithData returns a copy of the event with its payload set to data.
// It may be called more than once; the last value wins. The receiver
// is not modified.
func (e Event) WithData(data any) Event {
	e.Data = data
	return e
}

// HasData reports whether the event carries a payload.
func (e Event) HasData() bool {
	return e.Data != nil
}
