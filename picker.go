package buckets

import (
	"errors"
	"log/slog"

	"github.com/tanema/gween/ease"
)

// Assigner applies a picker selection to a task. A nil category removes the
// task's category. Returning ErrTaskNotFound marks a benign race with a
// concurrent delete.
type Assigner interface {
	AssignCategory(task TaskID, category *CategoryID) error
}

// AssignerFunc adapts a function to Assigner.
type AssignerFunc func(task TaskID, category *CategoryID) error

// AssignCategory calls f.
func (f AssignerFunc) AssignCategory(task TaskID, category *CategoryID) error {
	return f(task, category)
}

// GestureKind identifies a gesture delivered to Picker.ResolveGesture.
type GestureKind uint8

const (
	GestureControlTap GestureKind = iota // tap on a task's category control
	GestureOpen                          // press-and-hold or drag start on a control
	GestureDrag                          // pointer moved during a drag
	GestureRelease                       // drag ended
	GestureTap                           // tap anywhere other than a category control
	GestureCancel                        // explicit cancel (back, escape, view gone)
)

func (k GestureKind) String() string {
	switch k {
	case GestureControlTap:
		return "control_tap"
	case GestureOpen:
		return "open"
	case GestureDrag:
		return "drag"
	case GestureRelease:
		return "release"
	case GestureTap:
		return "tap"
	case GestureCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Gesture is one discrete input event for the picker. Points are in screen
// coordinates.
type Gesture struct {
	Kind GestureKind
	// TaskID and Anchor are set for GestureControlTap and GestureOpen.
	TaskID TaskID
	Anchor Rect
	// Point is the current pointer position.
	Point Vec2
	// Start is the press position for GestureOpen.
	Start Vec2
	// GestureID ties the events of one press together. A tap carrying the
	// ID of the drag that opened the picker is swallowed once.
	GestureID uint64
}

// Phase is the picker's lifecycle phase.
type Phase uint8

const (
	PhaseClosed   Phase = iota // no session
	PhaseAnchored              // open, no pointer samples
	PhaseDragging              // open, fed by a drag
)

func (p Phase) String() string {
	switch p {
	case PhaseAnchored:
		return "anchored"
	case PhaseDragging:
		return "dragging"
	default:
		return "closed"
	}
}

// Outcome summarizes what a gesture did.
type Outcome uint8

const (
	OutcomeIgnored    Outcome = iota // nothing changed
	OutcomeOpened                    // a session was created
	OutcomeUpdated                   // the open session changed (sample, phase)
	OutcomeCommitted                 // the selection was applied and the session closed
	OutcomeCancelled                 // the session closed without applying anything
	OutcomeTaskGone                  // commit found the task deleted; session closed
	OutcomeSuppressed                // the tap-up of an opening drag was swallowed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOpened:
		return "opened"
	case OutcomeUpdated:
		return "updated"
	case OutcomeCommitted:
		return "committed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTaskGone:
		return "task_gone"
	case OutcomeSuppressed:
		return "suppressed"
	default:
		return "ignored"
	}
}

// Result reports the effect of a gesture.
type Result struct {
	Outcome   Outcome
	TaskID    TaskID
	Highlight HighlightState
	// Category is the applied selection when Outcome is OutcomeCommitted; nil
	// means the category was removed.
	Category *CategoryID
	// Err is set when the assigner failed for a reason other than a deleted
	// task. The session is closed regardless.
	Err error
}

// PickerSession is the state of an open picker.
type PickerSession struct {
	TaskID       TaskID
	Anchor       Rect
	Highlight    HighlightState
	OpenedByDrag bool
	// Dragged is set once the pointer leaves the dead zone around the press
	// point. Only a dragged release commits or cancels.
	Dragged bool

	dragging   bool
	pressPoint Vec2
}

// Picker is the radial category picker's interaction controller. It owns at
// most one session, turns gestures into commits or cancellations and drives
// the highlight state machine. Not safe for concurrent use; call it from the
// host's update loop.
type Picker struct {
	tuning      Tuning
	assigner    Assigner
	highlighter *Highlighter
	categories  []CategoryRef
	session     *PickerSession

	feedback Feedback
	sink     EventSink
	logger   *slog.Logger
	debug    bool

	suppressArmed bool
	suppressID    uint64

	visual      PickerVisual
	openTween   *TweenGroup
	anchorTween *TweenGroup
	glows       map[TaskID]*glow

	stats PickerStats
}

// NewPicker creates a closed picker. A nil assigner accepts every commit.
func NewPicker(tuning Tuning, assigner Assigner) *Picker {
	if assigner == nil {
		assigner = AssignerFunc(func(TaskID, *CategoryID) error { return nil })
	}
	p := &Picker{
		tuning:      tuning,
		assigner:    assigner,
		highlighter: NewHighlighter(tuning.Layout),
		feedback:    nopFeedback{},
		logger:      slog.New(slog.DiscardHandler),
		glows:       make(map[TaskID]*glow),
	}
	p.highlighter.OnChange(p.highlightChanged)
	return p
}

// SetFeedback sets the haptic emitter. nil disables feedback.
func (p *Picker) SetFeedback(f Feedback) {
	if f == nil {
		f = nopFeedback{}
	}
	p.feedback = f
}

// SetEventSink sets the optional event bridge.
func (p *Picker) SetEventSink(sink EventSink) {
	p.sink = sink
}

// SetLogger sets the logger used for transitions. nil discards.
func (p *Picker) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	p.logger = l
}

// SetDebugMode enables logging of every pointer sample in addition to
// transitions.
func (p *Picker) SetDebugMode(enabled bool) {
	p.debug = enabled
}

// Tuning returns the current tuning.
func (p *Picker) Tuning() Tuning {
	return p.tuning
}

// SetTuning replaces the tuning. An active drag is re-evaluated against the
// new geometry.
func (p *Picker) SetTuning(t Tuning) {
	p.tuning = t
	p.highlighter.SetLayout(t.Layout)
	p.syncSessionHighlight()
}

// SetCategories replaces the category set. While a drag is active the
// highlight is re-evaluated against the new layout without pointer movement.
func (p *Picker) SetCategories(refs []CategoryRef) {
	p.categories = append(p.categories[:0:0], refs...)
	p.highlighter.SetCategories(p.categories)
	p.syncSessionHighlight()
}

// Categories returns the category snapshot in display order.
func (p *Picker) Categories() []CategoryRef {
	return sortedRefs(p.categories)
}

// Layout returns the item offsets for the current category set, relative to
// the palette center. Renderers and hit testing share these.
func (p *Picker) Layout() []Vec2 {
	return p.tuning.Layout.Offsets(len(p.categories))
}

// Phase returns the lifecycle phase.
func (p *Picker) Phase() Phase {
	switch {
	case p.session == nil:
		return PhaseClosed
	case p.session.dragging:
		return PhaseDragging
	default:
		return PhaseAnchored
	}
}

// Session returns a copy of the open session.
func (p *Picker) Session() (PickerSession, bool) {
	if p.session == nil {
		return PickerSession{}, false
	}
	return *p.session, true
}

// Highlight returns the current highlight.
func (p *Picker) Highlight() HighlightState {
	return p.highlighter.State()
}

// OnHighlightChange registers fn for highlight changes while a session is
// open.
func (p *Picker) OnHighlightChange(fn func(prev, next HighlightState)) CallbackHandle {
	return p.highlighter.OnChange(func(prev, next HighlightState) {
		if p.session != nil {
			fn(prev, next)
		}
	})
}

// Visual returns the palette's presentation state.
func (p *Picker) Visual() PickerVisual {
	return p.visual
}

// Overlay returns the palette disc at its displayed position, or nil while
// closed. Hosts route presses inside it to the palette instead of the
// controls underneath.
func (p *Picker) Overlay() HitShape {
	if p.session == nil {
		return nil
	}
	return p.tuning.Layout.Disc(p.visual.Center())
}

// Glow returns the transient glow level in [0, 1] of a recently committed
// task.
func (p *Picker) Glow(task TaskID) float64 {
	if g, ok := p.glows[task]; ok {
		return g.level
	}
	return 0
}

// Update advances the open animation, anchor tracking and glow resets by dt
// seconds.
func (p *Picker) Update(dt float32) {
	p.openTween.Update(dt)
	p.anchorTween.Update(dt)
	for id, g := range p.glows {
		if g.update(dt, p.tuning.GlowFade) {
			delete(p.glows, id)
		}
	}
}

// Open opens the picker for task anchored at anchor. If a session for another
// task is open it is cancelled first. Opening the already open task is a
// no-op.
func (p *Picker) Open(task TaskID, anchor Rect) Result {
	if p.session != nil {
		if p.session.TaskID == task {
			return Result{Outcome: OutcomeIgnored, TaskID: task}
		}
		p.cancel()
	}
	p.open(task, anchor)
	return Result{Outcome: OutcomeOpened, TaskID: task}
}

// Cancel closes the open session without applying anything.
func (p *Picker) Cancel() Result {
	if p.session == nil {
		return Result{}
	}
	return p.cancel()
}

// UpdateHighlight feeds a pointer position in screen coordinates and returns
// the resulting highlight. It is a no-op while closed.
func (p *Picker) UpdateHighlight(point Vec2) HighlightState {
	if p.session == nil {
		return HighlightState{}
	}
	return p.sampleAt(point)
}

// ResolveGesture applies g and reports the outcome.
func (p *Picker) ResolveGesture(g Gesture) Result {
	if (g.Kind == GestureControlTap || g.Kind == GestureTap) &&
		p.suppressArmed && g.GestureID == p.suppressID {
		p.suppressArmed = false
		p.stats.Suppressed++
		p.logger.Debug("picker tap suppressed", "gesture", g.GestureID)
		return Result{Outcome: OutcomeSuppressed, TaskID: g.TaskID}
	}

	switch g.Kind {
	case GestureControlTap:
		return p.controlTap(g)
	case GestureOpen:
		return p.dragOpen(g)
	case GestureDrag:
		return p.drag(g)
	case GestureRelease:
		return p.release(g)
	case GestureTap:
		return p.tap(g)
	case GestureCancel:
		return p.Cancel()
	}
	return Result{}
}

func (p *Picker) controlTap(g Gesture) Result {
	if p.session != nil && p.session.TaskID == g.TaskID {
		return p.cancel()
	}
	return p.Open(g.TaskID, g.Anchor)
}

func (p *Picker) dragOpen(g Gesture) Result {
	p.suppressArmed = true
	p.suppressID = g.GestureID

	outcome := OutcomeUpdated
	if p.session == nil || p.session.TaskID != g.TaskID {
		p.Open(g.TaskID, g.Anchor)
		p.session.OpenedByDrag = true
		outcome = OutcomeOpened
	}
	s := p.session
	s.dragging = true
	s.pressPoint = g.Start
	s.Dragged = g.Point.Sub(g.Start).Len() > p.tuning.DragDeadZone
	h := p.sampleAt(g.Point)
	return Result{Outcome: outcome, TaskID: s.TaskID, Highlight: h}
}

func (p *Picker) drag(g Gesture) Result {
	s := p.session
	if s == nil || !s.dragging {
		return Result{}
	}
	if !s.Dragged && g.Point.Sub(s.pressPoint).Len() > p.tuning.DragDeadZone {
		s.Dragged = true
	}
	h := p.sampleAt(g.Point)
	return Result{Outcome: OutcomeUpdated, TaskID: s.TaskID, Highlight: h}
}

func (p *Picker) release(g Gesture) Result {
	s := p.session
	if s == nil || !s.dragging {
		return Result{}
	}
	if !s.Dragged && g.Point.Sub(s.pressPoint).Len() > p.tuning.DragDeadZone {
		s.Dragged = true
	}
	if !s.Dragged {
		// Press-and-hold without movement: stay open for a follow-up tap.
		s.dragging = false
		p.highlighter.Reset()
		p.syncSessionHighlight()
		p.logger.Debug("picker anchored", "task", s.TaskID)
		return Result{Outcome: OutcomeUpdated, TaskID: s.TaskID}
	}
	h := p.sampleAt(g.Point)
	if h.Valid() {
		return p.commit(h)
	}
	return p.cancel()
}

func (p *Picker) tap(g Gesture) Result {
	if p.session == nil {
		return Result{}
	}
	center := p.visual.Center()
	disc := p.tuning.Layout.Disc(center)
	if !disc.Contains(g.Point.X, g.Point.Y) {
		return p.cancel()
	}
	rel := g.Point.Sub(center)
	h := HighlightFor(&rel, p.categories, p.tuning.Layout)
	if !h.Valid() {
		return Result{TaskID: p.session.TaskID}
	}
	return p.commit(h)
}

func (p *Picker) sampleAt(point Vec2) HighlightState {
	rel := point.Sub(p.visual.Center())
	if p.debug {
		p.logger.Debug("picker sample", "x", rel.X, "y", rel.Y)
	}
	h := p.highlighter.OnPointerSample(&rel, p.categories)
	p.syncSessionHighlight()
	return h
}

func (p *Picker) syncSessionHighlight() {
	if p.session != nil {
		p.session.Highlight = p.highlighter.State()
	}
}

func (p *Picker) highlightChanged(prev, next HighlightState) {
	if p.session == nil {
		return
	}
	p.stats.HighlightChanges++
	p.feedback.Play(HapticSelection)
	p.emit(PickerEvent{
		Type:      EventHighlightChanged,
		TaskID:    p.session.TaskID,
		Anchor:    p.session.Anchor,
		Highlight: next,
		Previous:  prev,
	})
}

func (p *Picker) open(task TaskID, anchor Rect) {
	p.session = &PickerSession{TaskID: task, Anchor: anchor}
	c := anchor.Center()
	p.visual.CenterX, p.visual.CenterY = c.X, c.Y
	p.openTween = TweenAppear(&p.visual, p.tuning.OpenDuration, ease.OutCubic)
	p.anchorTween = nil

	p.stats.Opens++
	p.feedback.Play(HapticTapLight)
	p.emit(PickerEvent{Type: EventOpened, TaskID: task, Anchor: anchor})
	p.logger.Debug("picker opened", "task", task, "anchor_x", anchor.X, "anchor_y", anchor.Y)
}

// close tears the session down. The session is cleared before the highlight
// resets so the reset does not tick.
func (p *Picker) close() PickerSession {
	s := *p.session
	p.session = nil
	p.highlighter.Reset()
	p.openTween = nil
	p.anchorTween = nil
	p.visual.Scale = closedScale
	p.visual.Alpha = 0
	return s
}

func (p *Picker) cancel() Result {
	s := p.close()
	p.stats.Cancels++
	p.emit(PickerEvent{Type: EventCancelled, TaskID: s.TaskID, Anchor: s.Anchor})
	p.logger.Debug("picker cancelled", "task", s.TaskID)
	p.debugLogStats()
	return Result{Outcome: OutcomeCancelled, TaskID: s.TaskID}
}

func (p *Picker) commit(h HighlightState) Result {
	category, _ := h.Selection()
	task := p.session.TaskID
	err := p.assigner.AssignCategory(task, category)
	s := p.close()

	switch {
	case errors.Is(err, ErrTaskNotFound):
		p.stats.TasksGone++
		p.emit(PickerEvent{Type: EventCancelled, TaskID: s.TaskID, Anchor: s.Anchor})
		p.logger.Debug("picker commit skipped, task deleted", "task", task)
		p.debugLogStats()
		return Result{Outcome: OutcomeTaskGone, TaskID: task, Highlight: h}
	case err != nil:
		p.stats.AssignErrors++
		p.emit(PickerEvent{Type: EventCancelled, TaskID: s.TaskID, Anchor: s.Anchor})
		p.logger.Error("picker commit failed", "task", task, "err", err)
		p.debugLogStats()
		return Result{Outcome: OutcomeCancelled, TaskID: task, Highlight: h, Err: err}
	}

	p.stats.Commits++
	p.feedback.Play(HapticDropSuccess)
	p.glows[task] = newGlow(p.tuning.GlowHold)
	p.emit(PickerEvent{
		Type:      EventCommitted,
		TaskID:    task,
		Anchor:    s.Anchor,
		Highlight: h,
		Category:  category,
	})
	p.logger.Debug("picker committed", "task", task, "target", h)
	p.debugLogStats()
	return Result{Outcome: OutcomeCommitted, TaskID: task, Highlight: h, Category: category}
}

func (p *Picker) emit(e PickerEvent) {
	if p.sink == nil {
		return
	}
	p.sink.EmitEvent(e)
}
