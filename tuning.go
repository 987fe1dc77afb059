package buckets

// Tuning holds the picker's adjustable constants.
type Tuning struct {
	Layout RadialLayout

	// DragDeadZone is the pointer travel in pixels before a press counts as a
	// drag.
	DragDeadZone float64
	// HoldDelay is how long, in seconds, a press on a category control must
	// be held before the picker opens without movement.
	HoldDelay float32

	OpenDuration     float32 // seconds for the open scale/fade
	ReanchorDuration float32 // seconds to follow a moved anchor
	GlowHold         float32 // seconds a committed row glows at full strength
	GlowFade         float32 // seconds for the glow to fade out
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Layout:           DefaultRadialLayout(),
		DragDeadZone:     defaultDragDeadZone,
		HoldDelay:        0.35,
		OpenDuration:     0.32,
		ReanchorDuration: 0.12,
		GlowHold:         0.6,
		GlowFade:         0.4,
	}
}

const defaultDragDeadZone = 4.0
