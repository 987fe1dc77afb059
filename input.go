package buckets

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Control is a task's on-screen category control. Pressing it opens the
// picker for TaskID anchored at Anchor.
type Control struct {
	TaskID TaskID
	Anchor Rect
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	start     Vec2
	last      Vec2
	control   *Control // control under the press, nil for empty space
	held      float32  // seconds since press
	opened    bool     // GestureOpen was emitted for this press
	moved     bool     // pointer left the dead zone
	gestureID uint64
}

// Input turns per-frame pointer state into picker Gestures. A press on a
// control opens the picker after HoldDelay or once the pointer leaves the
// drag dead zone. Not safe for concurrent use.
type Input struct {
	controls  []Control
	overlay   HitShape
	holdDelay float32
	deadZone  float64

	ps          pointerState
	nextGesture uint64
	gestures    []Gesture

	injectQueue []syntheticPointerEvent
	script      *GestureScript
	touching    bool
}

// NewInput creates an Input using the hold delay and dead zone from t.
func NewInput(t Tuning) *Input {
	in := &Input{}
	in.SetTuning(t)
	return in
}

// SetTuning updates the hold delay and dead zone.
func (in *Input) SetTuning(t Tuning) {
	in.holdDelay = t.HoldDelay
	in.deadZone = t.DragDeadZone
	if in.deadZone <= 0 {
		in.deadZone = defaultDragDeadZone
	}
}

// SetControls replaces the registered controls. Later controls are on top.
// A press already in progress keeps the control it started on.
func (in *Input) SetControls(controls []Control) {
	in.controls = append(in.controls[:0], controls...)
}

// SetOverlay sets a shape drawn above the controls, usually Picker.Overlay.
// Presses inside it never hit a control. nil clears it.
func (in *Input) SetOverlay(shape HitShape) {
	in.overlay = shape
}

// Controls returns the registered controls.
func (in *Input) Controls() []Control {
	return in.controls
}

// SetScript attaches a gesture script. Its steps are injected ahead of real
// input, one frame per Poll.
func (in *Input) SetScript(s *GestureScript) {
	in.script = s
}

// Pressed reports whether the pointer is down.
func (in *Input) Pressed() bool {
	return in.ps.down
}

// Poll reads this frame's pointer and returns the gestures it produced. dt is
// the frame time in seconds. Injected events take precedence over the mouse
// and touch screen. The returned slice is reused by the next call.
func (in *Input) Poll(dt float32) []Gesture {
	if in.script != nil {
		in.script.step(in)
	}
	if evt, ok := in.popInjected(); ok {
		return in.Process(Vec2{X: evt.x, Y: evt.y}, evt.pressed, dt)
	}

	var cancel bool
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cancel = true
	}

	mx, my := ebiten.CursorPosition()
	point := Vec2{X: float64(mx), Y: float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// The first touch wins over the mouse.
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		point = Vec2{X: float64(tx), Y: float64(ty)}
		pressed = true
		in.touching = true
	} else if in.touching {
		// Touch lifted: ebiten no longer reports its position.
		point = in.ps.last
		in.touching = false
	}

	out := in.Process(point, pressed, dt)
	if cancel {
		in.gestures = append(in.gestures, Gesture{Kind: GestureCancel})
		out = in.gestures
	}
	return out
}

// Process runs the pointer state machine for one frame and returns the
// resulting gestures. Poll calls it with live input; tests and replays call it
// directly. The returned slice is reused by the next call.
func (in *Input) Process(point Vec2, pressed bool, dt float32) []Gesture {
	in.gestures = in.gestures[:0]
	ps := &in.ps

	switch {
	case pressed && !ps.down:
		// Just pressed.
		in.nextGesture++
		*ps = pointerState{
			down:      true,
			start:     point,
			last:      point,
			control:   in.controlAt(point),
			gestureID: in.nextGesture,
		}

	case pressed && ps.down:
		// Held, possibly moved.
		ps.held += dt
		if !ps.moved && point.Sub(ps.start).Len() > in.deadZone {
			ps.moved = true
		}
		switch {
		case !ps.opened && ps.control != nil && (ps.moved || ps.held >= in.holdDelay):
			ps.opened = true
			in.gestures = append(in.gestures, Gesture{
				Kind:      GestureOpen,
				TaskID:    ps.control.TaskID,
				Anchor:    ps.control.Anchor,
				Point:     point,
				Start:     ps.start,
				GestureID: ps.gestureID,
			})
		case ps.opened && point != ps.last:
			in.gestures = append(in.gestures, Gesture{
				Kind:      GestureDrag,
				Point:     point,
				GestureID: ps.gestureID,
			})
		}
		ps.last = point

	case !pressed && ps.down:
		// Just released.
		if !ps.moved && point.Sub(ps.start).Len() > in.deadZone {
			ps.moved = true
		}
		if ps.opened {
			in.gestures = append(in.gestures, Gesture{
				Kind:      GestureRelease,
				Point:     point,
				GestureID: ps.gestureID,
			})
		}
		if !ps.moved {
			in.gestures = append(in.gestures, in.tapGesture(point))
		}
		*ps = pointerState{last: point}
	}
	return in.gestures
}

// tapGesture classifies the release of a press that never left the dead
// zone. The platform delivers it even when a hold opened the picker; the
// picker swallows that one by GestureID.
func (in *Input) tapGesture(point Vec2) Gesture {
	ps := &in.ps
	if ps.control != nil {
		if c := in.controlAt(point); c != nil && c.TaskID == ps.control.TaskID {
			return Gesture{
				Kind:      GestureControlTap,
				TaskID:    c.TaskID,
				Anchor:    c.Anchor,
				Point:     point,
				GestureID: ps.gestureID,
			}
		}
	}
	return Gesture{Kind: GestureTap, Point: point, GestureID: ps.gestureID}
}

// controlAt returns the topmost control containing point, or nil.
func (in *Input) controlAt(point Vec2) *Control {
	if in.overlay != nil && in.overlay.Contains(point.X, point.Y) {
		return nil
	}
	for i := len(in.controls) - 1; i >= 0; i-- {
		if in.controls[i].Anchor.Contains(point.X, point.Y) {
			c := in.controls[i]
			return &c
		}
	}
	return nil
}
