package buckets

// EventSink receives picker events. Set one on a Picker with SetEventSink to
// forward the interaction stream elsewhere (the ecs module bridges it into a
// Donburi world).
type EventSink interface {
	EmitEvent(event PickerEvent)
}

// PickerEvent describes one picker transition.
type PickerEvent struct {
	Type      EventType
	TaskID    TaskID
	Anchor    Rect
	Highlight HighlightState
	// Previous is the highlight before an EventHighlightChanged.
	Previous HighlightState
	// Category is the applied selection for EventCommitted; nil means the
	// category was removed.
	Category *CategoryID
}
