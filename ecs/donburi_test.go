package ecs

import (
	"testing"

	"github.com/phanxgames/buckets"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	if got := sink.Session(); got.Open || got.Commits != 0 {
		t.Errorf("fresh session = %+v", got)
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []buckets.PickerEvent
	PickerEventType.Subscribe(world, func(w donburi.World, e buckets.PickerEvent) {
		received = append(received, e)
	})

	task := buckets.NewTaskID()
	cat := buckets.NewCategoryID()
	sink.EmitEvent(buckets.PickerEvent{
		Type:   buckets.EventOpened,
		TaskID: task,
		Anchor: buckets.Rect{X: 10, Y: 20, Width: 30, Height: 30},
	})
	sink.EmitEvent(buckets.PickerEvent{
		Type:     buckets.EventCommitted,
		TaskID:   task,
		Category: &cat,
	})

	// Events are queued; process them.
	PickerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != buckets.EventOpened || received[0].TaskID != task {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[0].Anchor.X != 10 || received[0].Anchor.Width != 30 {
		t.Errorf("event 0 anchor: %+v", received[0].Anchor)
	}
	if received[1].Type != buckets.EventCommitted || received[1].Category == nil || *received[1].Category != cat {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_PickerStream(t *testing.T) {
	world := donburi.NewWorld()

	var types []buckets.EventType
	PickerEventType.Subscribe(world, func(w donburi.World, e buckets.PickerEvent) {
		types = append(types, e.Type)
	})

	tun := buckets.DefaultTuning()
	tun.OpenDuration = 0
	p := buckets.NewPicker(tun, nil)
	p.SetEventSink(NewDonburiSink(world))

	refs := []buckets.CategoryRef{{ID: buckets.NewCategoryID(), DisplayOrder: 0}}
	p.SetCategories(refs)

	anchor := buckets.Rect{X: 100, Y: 100, Width: 20, Height: 20}
	task := buckets.NewTaskID()
	p.Open(task, anchor)
	p.UpdateAnchor(buckets.Rect{X: 100, Y: 140, Width: 20, Height: 20})
	p.Cancel()

	if len(types) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %v", types)
	}
	events.ProcessAllEvents(world)

	want := []buckets.EventType{buckets.EventOpened, buckets.EventReanchored, buckets.EventCancelled}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MirrorsSession(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if !world.Valid(sink.Entity()) {
		t.Fatal("session entity not created")
	}

	task := buckets.NewTaskID()
	cat := buckets.NewCategoryID()
	moved := buckets.Rect{X: 0, Y: 40, Width: 20, Height: 20}
	hl := buckets.HighlightState{Kind: buckets.HighlightCategory, CategoryID: cat}

	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventOpened, TaskID: task, Anchor: buckets.Rect{Width: 20, Height: 20}})
	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventHighlightChanged, TaskID: task, Highlight: hl})
	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventReanchored, TaskID: task, Anchor: moved})

	// The component is current before events are processed.
	got := sink.Session()
	if !got.Open || got.TaskID != task || got.Anchor != moved || !got.Highlight.Equal(hl) {
		t.Fatalf("open session = %+v", got)
	}

	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventCommitted, TaskID: task, Category: &cat})
	got = sink.Session()
	if got.Open || got.Highlight.Kind != buckets.HighlightNone {
		t.Errorf("after commit still open: %+v", got)
	}
	if got.Commits != 1 || got.LastCommit == nil || *got.LastCommit != cat {
		t.Errorf("after commit: commits %d last %v", got.Commits, got.LastCommit)
	}

	cat = buckets.NewCategoryID()
	if *sink.Session().LastCommit == cat {
		t.Error("LastCommit aliases the event's category")
	}

	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventOpened, TaskID: task})
	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventCommitted, TaskID: task})
	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventOpened, TaskID: task})
	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventCancelled, TaskID: task})
	got = sink.Session()
	if got.Commits != 2 || got.LastCommit != nil || got.Cancels != 1 || got.Open {
		t.Errorf("after remove and cancel: %+v", got)
	}
}

func TestDonburiSink_SeparateWorlds(t *testing.T) {
	a := NewDonburiSink(donburi.NewWorld())
	b := NewDonburiSink(donburi.NewWorld())
	a.EmitEvent(buckets.PickerEvent{Type: buckets.EventCancelled})
	if a.Session().Cancels != 1 || b.Session().Cancels != 0 {
		t.Errorf("cancels a=%d b=%d, want 1 and 0", a.Session().Cancels, b.Session().Cancels)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink buckets.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	PickerEventType.Subscribe(world, func(w donburi.World, e buckets.PickerEvent) {
		count1++
	})
	PickerEventType.Subscribe(world, func(w donburi.World, e buckets.PickerEvent) {
		count2++
	})

	sink.EmitEvent(buckets.PickerEvent{Type: buckets.EventCancelled})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
