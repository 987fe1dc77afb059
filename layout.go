package buckets

import "math"

// itemInset pulls items toward the center by this fraction of their size so
// their visual edge approaches, but does not cross, the palette's outer ring.
const itemInset = 0.7

const (
	defaultPaletteRadius = 112.0
	defaultItemSize      = 56.0
	noneButtonPadding    = 12.0
)

// RadialLayout describes the palette geometry shared by the renderer and the
// hit-tester.
type RadialLayout struct {
	// Radius is the palette's outer radius.
	Radius float64
	// ItemSize is the diameter of a category item.
	ItemSize float64
	// NoneThreshold is the radius of the central "remove category" zone.
	NoneThreshold float64
	// ItemThreshold is the maximum pointer distance from an item center that
	// still counts as over the item.
	ItemThreshold float64
}

// DefaultRadialLayout returns the stock palette geometry: radius 112, item
// size 56, item threshold 39.2, none threshold 34.
func DefaultRadialLayout() RadialLayout {
	return RadialLayout{
		Radius:        defaultPaletteRadius,
		ItemSize:      defaultItemSize,
		NoneThreshold: (defaultItemSize + noneButtonPadding) / 2,
		ItemThreshold: defaultItemSize * itemInset,
	}
}

// EffectiveRadius is the radius on which item centers sit.
func (l RadialLayout) EffectiveRadius() float64 {
	return l.Radius - l.ItemSize*itemInset
}

// Offsets returns the item centers for count items, relative to the palette
// center.
func (l RadialLayout) Offsets(count int) []Vec2 {
	return LayoutOffsets(count, l.Radius, l.ItemSize)
}

// HitTest resolves p (relative to the palette center) against count items.
func (l RadialLayout) HitTest(p Vec2, count int) TargetResult {
	return NearestTarget(p, l.Offsets(count), l.NoneThreshold, l.ItemThreshold)
}

// Disc returns the palette's outer circle centered at c.
func (l RadialLayout) Disc(c Vec2) HitCircle {
	return HitCircle{CenterX: c.X, CenterY: c.Y, Radius: l.Radius}
}

// LayoutOffsets returns count points evenly spaced on a circle, starting at
// the top (-90°) and proceeding clockwise in screen coordinates. Items sit on
// radius - itemRadius*0.7. A non-positive count yields nil.
func LayoutOffsets(count int, radius, itemRadius float64) []Vec2 {
	if count <= 0 {
		return nil
	}
	r := radius - itemRadius*itemInset
	out := make([]Vec2, count)
	for i := range out {
		fraction := float64(i) / float64(count)
		angle := fraction*(2*math.Pi) - math.Pi/2
		sin, cos := math.Sincos(angle)
		out[i] = Vec2{X: cos * r, Y: sin * r}
	}
	return out
}
