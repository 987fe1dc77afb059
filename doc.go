// Package buckets is a task inbox with a radial category picker for
// [Ebitengine].
//
// The picker is a ring of category items around a central "remove category"
// target. It opens anchored to a task's category control, either on a tap
// or on press-and-drag, and applies the target under the pointer when the
// drag is released or a palette item is tapped.
//
// # Quick start
//
// Wire a [Store], an [Inbox] and a [Picker], then feed the picker gestures
// from an [Input] each frame:
//
//	store := buckets.NewMemoryStore()
//	inbox := buckets.NewInbox(store)
//	if err := inbox.Load(ctx); err != nil { ... }
//
//	picker := buckets.NewPicker(buckets.DefaultTuning(), inbox.Assigner(ctx))
//	picker.SetFeedback(inbox.Feedback())
//	input := buckets.NewInput(buckets.DefaultTuning())
//
//	func (g *Game) Update() error {
//		dt := float32(1) / float32(ebiten.TPS())
//		g.input.SetOverlay(g.picker.Overlay())
//		for _, gesture := range g.input.Poll(dt) {
//			g.picker.ResolveGesture(gesture)
//		}
//		g.picker.Update(dt)
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		buckets.DrawPicker(screen, g.picker, g.categories)
//	}
//
// # Geometry
//
// [LayoutOffsets] places items evenly on a circle starting at the top and
// [NearestTarget] resolves a pointer to the remove target, a category or
// nothing. Rendering and hit testing share [RadialLayout], so what is drawn
// is what is hit.
//
// # Highlight
//
// [Highlighter] recomputes the highlighted target from the latest pointer
// sample and category set and notifies handlers exactly once per actual
// change. The picker turns each change into a selection haptic.
//
// # Persistence
//
// [MemoryStore] keeps everything in memory. The sqlite subpackage provides a
// durable [Store]; the config subpackage loads picker tuning, storage and
// logging settings from TOML, YAML or JSON. Picker events can be bridged into
// a [Donburi] world with the buckets/ecs module.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package buckets
