package buckets

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestLayoutOffsetsEmpty(t *testing.T) {
	for _, count := range []int{0, -1, -50} {
		if got := LayoutOffsets(count, 112, 56); len(got) != 0 {
			t.Errorf("LayoutOffsets(%d) = %v, want empty", count, got)
		}
	}
}

func TestLayoutOffsetsSingleAtTop(t *testing.T) {
	got := LayoutOffsets(1, 112, 56)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	r := 112 - 56*0.7
	if !approxEqual(got[0].X, 0, epsilon) || !approxEqual(got[0].Y, -r, epsilon) {
		t.Errorf("offset = %v, want (0, %v)", got[0], -r)
	}
}

func TestLayoutOffsetsFourCardinal(t *testing.T) {
	r := 100 - 20*0.7
	want := []Vec2{{0, -r}, {r, 0}, {0, r}, {-r, 0}}
	got := LayoutOffsets(4, 100, 20)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approxEqual(got[i].X, want[i].X, 1e-9) || !approxEqual(got[i].Y, want[i].Y, 1e-9) {
			t.Errorf("offset[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLayoutOffsetsOnCircleAndDistinct(t *testing.T) {
	for _, count := range []int{1, 2, 3, 6, 7, 12, 40} {
		l := DefaultRadialLayout()
		got := l.Offsets(count)
		if len(got) != count {
			t.Fatalf("count %d: len = %d", count, len(got))
		}
		r := l.EffectiveRadius()
		for i, p := range got {
			if !approxEqual(p.Len(), r, 1e-9) {
				t.Errorf("count %d: |offset[%d]| = %v, want %v", count, i, p.Len(), r)
			}
			for j := i + 1; j < len(got); j++ {
				if got[j].Sub(p).Len() < 1e-6 {
					t.Errorf("count %d: offsets %d and %d coincide", count, i, j)
				}
			}
		}
	}
}

func TestLayoutOffsetsClockwise(t *testing.T) {
	// Screen coordinates: y grows downward, so the second of three items is
	// to the right of the first.
	got := LayoutOffsets(3, 112, 56)
	if got[1].X <= 0 || got[2].X >= 0 {
		t.Errorf("offsets not clockwise from the top: %v", got)
	}
}

func TestDefaultRadialLayout(t *testing.T) {
	l := DefaultRadialLayout()
	if l.Radius != 112 || l.ItemSize != 56 {
		t.Errorf("radius/item = %v/%v, want 112/56", l.Radius, l.ItemSize)
	}
	if !approxEqual(l.ItemThreshold, 39.2, 1e-9) {
		t.Errorf("ItemThreshold = %v, want 39.2", l.ItemThreshold)
	}
	if l.NoneThreshold != 34 {
		t.Errorf("NoneThreshold = %v, want 34", l.NoneThreshold)
	}
	if !approxEqual(l.EffectiveRadius(), 72.8, 1e-9) {
		t.Errorf("EffectiveRadius = %v, want 72.8", l.EffectiveRadius())
	}
}

func TestRadialLayoutDisc(t *testing.T) {
	l := DefaultRadialLayout()
	d := l.Disc(Vec2{200, 300})
	if !d.Contains(200, 300+112) {
		t.Error("edge of disc should be inside")
	}
	if d.Contains(200, 300+112.5) {
		t.Error("beyond radius should be outside")
	}
}
