package buckets

import "math"

// HitShape is a region that can answer point containment.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// TargetKind classifies the result of a palette hit test.
type TargetKind uint8

const (
	TargetNone     TargetKind = iota // nothing under the pointer
	TargetRemove                     // the central "remove category" target
	TargetCategory                   // a category item; see TargetResult.Index
)

func (k TargetKind) String() string {
	switch k {
	case TargetRemove:
		return "remove"
	case TargetCategory:
		return "category"
	default:
		return "none"
	}
}

// TargetResult is the outcome of NearestTarget.
type TargetResult struct {
	Kind  TargetKind
	Index int // valid when Kind == TargetCategory
}

// NearestTarget resolves p against the item centers. The none zone is checked
// first and wins over any overlapping item. Otherwise the closest center
// within itemThreshold is returned; equidistant centers resolve to the lowest
// index. Non-finite input resolves to TargetNone.
func NearestTarget(p Vec2, centers []Vec2, noneThreshold, itemThreshold float64) TargetResult {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
		return TargetResult{Kind: TargetNone}
	}
	if p.Len() < noneThreshold {
		return TargetResult{Kind: TargetRemove}
	}

	best := -1
	bestDist := math.Inf(1)
	for i, c := range centers {
		d := p.Sub(c).Len()
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 || bestDist > itemThreshold {
		return TargetResult{Kind: TargetNone}
	}
	return TargetResult{Kind: TargetCategory, Index: best}
}
