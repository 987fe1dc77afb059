package buckets

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const closedScale = 0.85

// PickerVisual is the palette's animated presentation state. Renderers read it
// through Picker.Visual.
type PickerVisual struct {
	CenterX, CenterY float64
	Scale            float64
	Alpha            float64
}

// Center returns the displayed palette center.
func (v PickerVisual) Center() Vec2 {
	return Vec2{v.CenterX, v.CenterY}
}

// TweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each frame; values are written through to the fields.
//
// There is no global animation manager; the picker owns its groups and
// advances them from Picker.Update.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

func newTweenGroup(duration float32, fn ease.TweenFunc, fields []*float64, targets []float64) *TweenGroup {
	g := &TweenGroup{count: len(fields)}
	if duration <= 0 {
		for i, f := range fields {
			*f = targets[i]
		}
		g.Done = true
		return g
	}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(targets[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenCenter animates v's center to to.
func TweenCenter(v *PickerVisual, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(duration, fn,
		[]*float64{&v.CenterX, &v.CenterY},
		[]float64{to.X, to.Y})
}

// TweenAppear starts v at the closed scale and transparent, and animates it
// to full size and opacity.
func TweenAppear(v *PickerVisual, duration float32, fn ease.TweenFunc) *TweenGroup {
	v.Scale = closedScale
	v.Alpha = 0
	return newTweenGroup(duration, fn,
		[]*float64{&v.Scale, &v.Alpha},
		[]float64{1, 1})
}

// TweenValue animates a single field.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(duration, fn, []*float64{field}, []float64{to})
}

// glow is the transient highlight left on a row after a commit: it holds at
// full strength, then fades. Frame driven; nothing runs in the background.
type glow struct {
	level float64
	hold  float32
	fade  *TweenGroup
}

func newGlow(hold float32) *glow {
	return &glow{level: 1, hold: hold}
}

// update advances the glow and reports whether it has fully faded.
func (g *glow) update(dt float32, fadeDuration float32) bool {
	if g.hold > 0 {
		g.hold -= dt
		if g.hold > 0 {
			return false
		}
		g.fade = TweenValue(&g.level, 0, fadeDuration, ease.OutQuad)
		return g.fade.Done
	}
	if g.fade == nil {
		g.fade = TweenValue(&g.level, 0, fadeDuration, ease.OutQuad)
	}
	g.fade.Update(dt)
	return g.fade.Done
}
