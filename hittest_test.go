package buckets

import (
	"math"
	"testing"
)

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 20, 30, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 40, 60, true},
		{"left of", 9, 30, false},
		{"below", 20, 61, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 0, CenterY: 0, Radius: 10}
	if !c.Contains(10, 0) {
		t.Error("point on circle should be inside")
	}
	if !c.Contains(3, 4) {
		t.Error("interior point should be inside")
	}
	if c.Contains(8, 8) {
		t.Error("(8,8) is outside radius 10")
	}
}

func TestNearestTarget(t *testing.T) {
	centers := LayoutOffsets(6, 112, 56)
	l := DefaultRadialLayout()

	tests := []struct {
		name string
		p    Vec2
		want TargetResult
	}{
		{"origin", Vec2{0, 0}, TargetResult{Kind: TargetRemove}},
		{"just inside none", Vec2{33.9, 0}, TargetResult{Kind: TargetRemove}},
		{"on item 0", centers[0], TargetResult{Kind: TargetCategory, Index: 0}},
		{"on item 3", centers[3], TargetResult{Kind: TargetCategory, Index: 3}},
		{"near item 2", Vec2{centers[2].X + 10, centers[2].Y - 5}, TargetResult{Kind: TargetCategory, Index: 2}},
		{"far outside", Vec2{500, 500}, TargetResult{Kind: TargetNone}},
		{"NaN", Vec2{math.NaN(), 0}, TargetResult{Kind: TargetNone}},
		{"Inf", Vec2{0, math.Inf(-1)}, TargetResult{Kind: TargetNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestTarget(tt.p, centers, l.NoneThreshold, l.ItemThreshold)
			if got != tt.want {
				t.Errorf("NearestTarget(%v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNearestTargetRemoveWinsOverlap(t *testing.T) {
	// An item sitting on the origin still loses to the remove target.
	centers := []Vec2{{0, 0}}
	got := NearestTarget(Vec2{1, 1}, centers, 10, 50)
	if got.Kind != TargetRemove {
		t.Errorf("got %v, want remove", got.Kind)
	}
}

func TestNearestTargetZeroNoneThreshold(t *testing.T) {
	centers := []Vec2{{0, -50}}
	got := NearestTarget(Vec2{0, 0}, centers, 0, 10)
	if got.Kind != TargetNone {
		t.Errorf("got %v, want none with no remove zone", got.Kind)
	}
}

func TestNearestTargetTieLowestIndex(t *testing.T) {
	centers := []Vec2{{-10, 100}, {10, 100}}
	got := NearestTarget(Vec2{0, 100}, centers, 5, 20)
	if got.Kind != TargetCategory || got.Index != 0 {
		t.Errorf("got %+v, want category 0", got)
	}
}

func TestNearestTargetThresholdInclusive(t *testing.T) {
	centers := []Vec2{{0, 100}}
	if got := NearestTarget(Vec2{0, 120}, centers, 5, 20); got.Kind != TargetCategory {
		t.Errorf("distance == threshold: got %v, want category", got.Kind)
	}
	if got := NearestTarget(Vec2{0, 120.01}, centers, 5, 20); got.Kind != TargetNone {
		t.Errorf("distance > threshold: got %v, want none", got.Kind)
	}
}

func TestNearestTargetNoCenters(t *testing.T) {
	if got := NearestTarget(Vec2{50, 50}, nil, 34, 39.2); got.Kind != TargetNone {
		t.Errorf("got %v, want none", got.Kind)
	}
	if got := NearestTarget(Vec2{0, 0}, nil, 34, 39.2); got.Kind != TargetRemove {
		t.Errorf("origin with no centers: got %v, want remove", got.Kind)
	}
}

func TestTargetKindString(t *testing.T) {
	if TargetRemove.String() == TargetCategory.String() {
		t.Error("target kinds should have distinct names")
	}
}
