package buckets

import "testing"

func drainInjected(in *Input) []syntheticPointerEvent {
	var out []syntheticPointerEvent
	for {
		evt, ok := in.popInjected()
		if !ok {
			return out
		}
		out = append(out, evt)
	}
}

func TestInjectTap(t *testing.T) {
	in := NewInput(DefaultTuning())
	in.InjectTap(10, 20)
	if in.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", in.Pending())
	}
	evts := drainInjected(in)
	if !evts[0].pressed || evts[1].pressed {
		t.Errorf("events = %+v, want press then release", evts)
	}
	if in.Pending() != 0 {
		t.Errorf("pending after drain = %d", in.Pending())
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	in := NewInput(DefaultTuning())
	in.InjectDrag(0, 0, 40, 80, 5)
	evts := drainInjected(in)
	if len(evts) != 5 {
		t.Fatalf("events = %d, want 5", len(evts))
	}
	wantX := []float64{0, 10, 20, 30, 40}
	for i, e := range evts {
		if e.x != wantX[i] || e.y != wantX[i]*2 {
			t.Errorf("event %d at (%v, %v), want (%v, %v)", i, e.x, e.y, wantX[i], wantX[i]*2)
		}
		if e.pressed != (i < 4) {
			t.Errorf("event %d pressed = %v", i, e.pressed)
		}
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	in := NewInput(DefaultTuning())
	in.InjectDrag(0, 0, 10, 10, 0)
	if in.Pending() != 2 {
		t.Errorf("pending = %d, want 2", in.Pending())
	}
}

func TestInjectHold(t *testing.T) {
	in := NewInput(DefaultTuning())
	in.InjectHold(5, 5, 3)
	evts := drainInjected(in)
	if len(evts) != 5 {
		t.Fatalf("events = %d, want 5", len(evts))
	}
	for i, e := range evts {
		if e.x != 5 || e.y != 5 {
			t.Errorf("event %d moved to (%v, %v)", i, e.x, e.y)
		}
	}
	if evts[4].pressed {
		t.Error("last event should release")
	}
}

func TestPollConsumesInjectedFirst(t *testing.T) {
	task := NewTaskID()
	in := NewInput(DefaultTuning())
	in.SetControls([]Control{{TaskID: task, Anchor: testAnchor}})
	in.InjectTap(200, 300)

	if gs := in.Poll(frame); len(gs) != 0 {
		t.Fatalf("press frame produced %v", kinds(gs))
	}
	gs := in.Poll(frame)
	if len(gs) != 1 || gs[0].Kind != GestureControlTap || gs[0].TaskID != task {
		t.Errorf("release frame produced %+v, want control tap", gs)
	}
}

func TestInjectedHoldOpensPicker(t *testing.T) {
	in := NewInput(DefaultTuning())
	in.SetControls([]Control{{TaskID: NewTaskID(), Anchor: testAnchor}})
	in.InjectHold(200, 300, 30)

	var got []GestureKind
	for in.Pending() > 0 {
		got = append(got, kinds(in.Poll(frame))...)
	}
	want := []GestureKind{GestureOpen, GestureRelease, GestureControlTap}
	if !sameKinds(got, want) {
		t.Errorf("gestures = %v, want %v", got, want)
	}
}
