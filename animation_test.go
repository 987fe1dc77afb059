package buckets

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenGroupZeroDuration(t *testing.T) {
	var v PickerVisual
	g := TweenCenter(&v, Vec2{3, 4}, 0, ease.Linear)
	if !g.Done || v.Center() != (Vec2{3, 4}) {
		t.Errorf("zero duration: done %v center %v", g.Done, v.Center())
	}
}

func TestTweenGroupLinear(t *testing.T) {
	var x float64
	g := TweenValue(&x, 10, 1, ease.Linear)
	g.Update(0.5)
	if !approxEqual(x, 5, 1e-4) || g.Done {
		t.Errorf("half way: x %v done %v", x, g.Done)
	}
	g.Update(0.6)
	if x != 10 || !g.Done {
		t.Errorf("finished: x %v done %v", x, g.Done)
	}
	g.Update(1)
	if x != 10 {
		t.Errorf("update after done moved x to %v", x)
	}
}

func TestTweenGroupNil(t *testing.T) {
	var g *TweenGroup
	g.Update(1)
}

func TestTweenAppear(t *testing.T) {
	v := PickerVisual{Scale: 1, Alpha: 1}
	g := TweenAppear(&v, 0.2, ease.Linear)
	if v.Scale != closedScale || v.Alpha != 0 {
		t.Errorf("start = %+v", v)
	}
	g.Update(0.1)
	if v.Scale <= closedScale || v.Scale >= 1 || v.Alpha <= 0 || v.Alpha >= 1 {
		t.Errorf("mid = %+v", v)
	}
	g.Update(0.2)
	if v.Scale != 1 || v.Alpha != 1 {
		t.Errorf("end = %+v", v)
	}
}

func TestGlowHoldsThenFades(t *testing.T) {
	g := newGlow(0.5)
	if g.update(0.25, 0.5) || g.level != 1 {
		t.Fatalf("during hold: level %v", g.level)
	}
	if g.update(0.3, 0.5) {
		t.Fatal("glow finished as the hold ended")
	}
	g.update(0.25, 0.5)
	if g.level <= 0 || g.level >= 1 {
		t.Errorf("mid fade level = %v", g.level)
	}
	if !g.update(0.5, 0.5) || g.level != 0 {
		t.Errorf("after fade: level %v", g.level)
	}
}

func TestGlowZeroFade(t *testing.T) {
	g := newGlow(0.1)
	if !g.update(0.2, 0) {
		t.Error("zero fade should finish as soon as the hold ends")
	}
}
