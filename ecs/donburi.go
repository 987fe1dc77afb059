package ecs

import (
	"github.com/phanxgames/buckets"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PickerEventType is the Donburi event type for picker events.
var PickerEventType = events.NewEventType[buckets.PickerEvent]()

// SessionData mirrors the picker session so systems can query it without
// subscribing to events.
type SessionData struct {
	Open      bool
	TaskID    buckets.TaskID
	Anchor    buckets.Rect
	Highlight buckets.HighlightState

	// LastCommit is the selection applied by the most recent commit; nil
	// when it removed the category or nothing has been committed yet.
	LastCommit *buckets.CategoryID
	Commits    int
	Cancels    int
}

// Session is the component holding SessionData on the sink's entity.
var Session = donburi.NewComponentType[SessionData]()

// DonburiSink is a picker EventSink backed by a Donburi world. The session
// entity is updated as each event arrives; the event itself is queued on
// PickerEventType until ProcessEvents.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates the session entity in world and returns a sink
// that keeps it current.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entity: world.Create(Session)}
}

// Entity returns the entity carrying the Session component.
func (s *DonburiSink) Entity() donburi.Entity { return s.entity }

// Session returns a copy of the mirrored session.
func (s *DonburiSink) Session() SessionData {
	return *Session.Get(s.world.Entry(s.entity))
}

// EmitEvent implements buckets.EventSink.
func (s *DonburiSink) EmitEvent(event buckets.PickerEvent) {
	d := Session.Get(s.world.Entry(s.entity))
	switch event.Type {
	case buckets.EventOpened:
		d.Open = true
		d.TaskID = event.TaskID
		d.Anchor = event.Anchor
		d.Highlight = buckets.HighlightState{}
	case buckets.EventHighlightChanged:
		d.Highlight = event.Highlight
	case buckets.EventReanchored:
		d.Anchor = event.Anchor
	case buckets.EventCommitted:
		d.Open = false
		d.Highlight = buckets.HighlightState{}
		d.LastCommit = nil
		if event.Category != nil {
			c := *event.Category
			d.LastCommit = &c
		}
		d.Commits++
	case buckets.EventCancelled:
		d.Open = false
		d.Highlight = buckets.HighlightState{}
		d.Cancels++
	}
	PickerEventType.Publish(s.world, event)
}
