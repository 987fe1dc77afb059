package buckets

import "github.com/tanema/gween/ease"

// UpdateAnchor moves the open session's anchor, for example when the task
// row scrolls. The displayed palette follows smoothly; the highlight and any
// drag in progress are left untouched. Reports false when closed.
func (p *Picker) UpdateAnchor(anchor Rect) bool {
	s := p.session
	if s == nil {
		return false
	}
	if s.Anchor == anchor {
		return true
	}
	s.Anchor = anchor
	p.anchorTween = TweenCenter(&p.visual, anchor.Center(), p.tuning.ReanchorDuration, ease.OutCubic)
	p.emit(PickerEvent{
		Type:      EventReanchored,
		TaskID:    s.TaskID,
		Anchor:    anchor,
		Highlight: p.highlighter.State(),
	})
	return true
}

// AnchorTarget returns the center the palette is moving toward, which differs
// from Visual().Center() while a re-anchor animation runs.
func (p *Picker) AnchorTarget() (Vec2, bool) {
	if p.session == nil {
		return Vec2{}, false
	}
	return p.session.Anchor.Center(), true
}
