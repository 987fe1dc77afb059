package buckets

import "slices"

// HighlightKind discriminates HighlightState.
type HighlightKind uint8

const (
	HighlightNone     HighlightKind = iota // no target under the pointer
	HighlightRemove                        // the "remove category" target
	HighlightCategory                      // a category; see HighlightState.CategoryID
)

func (k HighlightKind) String() string {
	switch k {
	case HighlightRemove:
		return "remove"
	case HighlightCategory:
		return "category"
	default:
		return "none"
	}
}

// HighlightState is the target currently under the pointer. The zero value
// is "no highlight".
type HighlightState struct {
	Kind       HighlightKind
	CategoryID CategoryID // valid when Kind == HighlightCategory
}

// Equal reports whether h and o name the same target.
func (h HighlightState) Equal(o HighlightState) bool {
	if h.Kind != o.Kind {
		return false
	}
	return h.Kind != HighlightCategory || h.CategoryID == o.CategoryID
}

// Valid reports whether releasing over h would commit.
func (h HighlightState) Valid() bool {
	return h.Kind != HighlightNone
}

// Selection returns the category a commit over h applies: nil for the remove
// target. ok is false when h is not a valid target.
func (h HighlightState) Selection() (id *CategoryID, ok bool) {
	switch h.Kind {
	case HighlightRemove:
		return nil, true
	case HighlightCategory:
		c := h.CategoryID
		return &c, true
	default:
		return nil, false
	}
}

func (h HighlightState) String() string {
	if h.Kind == HighlightCategory {
		return "category(" + h.CategoryID.String() + ")"
	}
	return h.Kind.String()
}

// HighlightFor is the pure highlight transition: it lays out categories in
// display order, hit-tests sample (relative to the palette center) and maps
// the result back to a category ID.
func HighlightFor(sample *Vec2, categories []CategoryRef, layout RadialLayout) HighlightState {
	if sample == nil {
		return HighlightState{}
	}
	refs := sortedRefs(categories)
	res := layout.HitTest(*sample, len(refs))
	return highlightFromTarget(res, refs)
}

func highlightFromTarget(res TargetResult, sorted []CategoryRef) HighlightState {
	switch res.Kind {
	case TargetRemove:
		return HighlightState{Kind: HighlightRemove}
	case TargetCategory:
		if res.Index >= 0 && res.Index < len(sorted) {
			return HighlightState{Kind: HighlightCategory, CategoryID: sorted[res.Index].ID}
		}
	}
	return HighlightState{}
}

type highlightHandler struct {
	id uint32
	fn func(prev, next HighlightState)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters the callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

// Highlighter tracks the highlighted target as pointer samples arrive and as
// the category set changes. It notifies OnChange handlers exactly once per
// actual change. Not safe for concurrent use.
type Highlighter struct {
	layout     RadialLayout
	categories []CategoryRef
	sample     *Vec2
	state      HighlightState

	handlers []highlightHandler
	nextID   uint32
}

// NewHighlighter creates a Highlighter in the "no highlight" state.
func NewHighlighter(layout RadialLayout) *Highlighter {
	return &Highlighter{layout: layout}
}

// State returns the current highlight.
func (h *Highlighter) State() HighlightState {
	return h.state
}

// Sample returns the last pointer sample, or nil when no drag is active.
func (h *Highlighter) Sample() *Vec2 {
	if h.sample == nil {
		return nil
	}
	s := *h.sample
	return &s
}

// Categories returns the category snapshot in display order.
func (h *Highlighter) Categories() []CategoryRef {
	return h.categories
}

// Layout returns the geometry used for hit testing.
func (h *Highlighter) Layout() RadialLayout {
	return h.layout
}

// OnChange registers fn to be called with the previous and new state each
// time the highlight changes.
func (h *Highlighter) OnChange(fn func(prev, next HighlightState)) CallbackHandle {
	h.nextID++
	id := h.nextID
	h.handlers = append(h.handlers, highlightHandler{id: id, fn: fn})
	return CallbackHandle{id: id, remove: h.removeHandler}
}

func (h *Highlighter) removeHandler(id uint32) {
	for i := range h.handlers {
		if h.handlers[i].id == id {
			copy(h.handlers[i:], h.handlers[i+1:])
			h.handlers[len(h.handlers)-1] = highlightHandler{}
			h.handlers = h.handlers[:len(h.handlers)-1]
			return
		}
	}
}

// OnPointerSample records sample (nil ends the drag) and the current category
// set, then recomputes the highlight.
func (h *Highlighter) OnPointerSample(sample *Vec2, categories []CategoryRef) HighlightState {
	if sample != nil {
		s := *sample
		h.sample = &s
	} else {
		h.sample = nil
	}
	h.categories = sortedRefs(categories)
	return h.recompute()
}

// SetCategories replaces the category set and re-evaluates the last sample
// against the new layout.
func (h *Highlighter) SetCategories(categories []CategoryRef) HighlightState {
	h.categories = sortedRefs(categories)
	return h.recompute()
}

// SetLayout replaces the geometry and re-evaluates the last sample.
func (h *Highlighter) SetLayout(layout RadialLayout) HighlightState {
	h.layout = layout
	return h.recompute()
}

// Reset clears the pointer sample.
func (h *Highlighter) Reset() HighlightState {
	h.sample = nil
	return h.recompute()
}

func (h *Highlighter) recompute() HighlightState {
	next := HighlightState{}
	if h.sample != nil {
		res := h.layout.HitTest(*h.sample, len(h.categories))
		next = highlightFromTarget(res, h.categories)
	}
	if next.Equal(h.state) {
		return h.state
	}
	prev := h.state
	h.state = next
	// Handlers may unsubscribe from inside fn.
	for _, hd := range slices.Clone(h.handlers) {
		hd.fn(prev, next)
	}
	return next
}
