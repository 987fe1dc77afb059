package buckets

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	circleSegments = 48

	// Limited by the uint16 index buffer.
	maxBatchVertices = math.MaxUint16
	ringWidth      = 3.0
	debugGlyphW    = 6 // ebitenutil debug font cell
	debugGlyphH    = 16
)

// --- White pixel singleton (single-threaded, drawn from the game loop) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured fans.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// disc is one filled circle of the palette in screen coordinates.
type disc struct {
	Center Vec2
	Radius float64
	Color  Color
	Label  string
}

// PickerStyle holds the palette's colors.
type PickerStyle struct {
	Background Color
	None       Color
	Ring       Color
}

// DefaultPickerStyle returns the stock dark palette.
func DefaultPickerStyle() PickerStyle {
	return PickerStyle{
		Background: Color{0.08, 0.08, 0.1, 0.85},
		None:       Color{0.35, 0.35, 0.38, 1},
		Ring:       ColorWhite,
	}
}

// PickerRenderer draws a Picker with ebiten. It reuses its vertex buffers
// between frames.
type PickerRenderer struct {
	Style PickerStyle

	discs []disc
	verts []ebiten.Vertex
	inds  []uint16
}

// NewPickerRenderer creates a renderer with DefaultPickerStyle.
func NewPickerRenderer() *PickerRenderer {
	return &PickerRenderer{Style: DefaultPickerStyle()}
}

var defaultRenderer = NewPickerRenderer()

// DrawPicker draws p onto screen with the default renderer. cats supplies
// names and colors for the picker's category refs.
func DrawPicker(screen *ebiten.Image, p *Picker, cats []Category) {
	defaultRenderer.Draw(screen, p, cats)
}

// Draw draws the open palette: the backdrop disc, the remove target, one item
// per category at the layout offsets, and a ring around the highlighted
// target. Nothing is drawn while the picker is closed.
func (r *PickerRenderer) Draw(screen *ebiten.Image, p *Picker, cats []Category) {
	r.discs = r.layoutDiscs(r.discs[:0], p, cats)
	if len(r.discs) == 0 {
		return
	}

	r.batchDiscs(func(verts []ebiten.Vertex, inds []uint16) {
		screen.DrawTriangles(verts, inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
	})

	for _, d := range r.discs {
		if d.Label == "" {
			continue
		}
		x := int(d.Center.X) - len(d.Label)*debugGlyphW/2
		y := int(d.Center.Y) - debugGlyphH/2
		ebitenutil.DebugPrintAt(screen, d.Label, x, y)
	}
}

// DrawGlow draws the post-commit glow behind a task's control. level comes
// from Picker.Glow.
func DrawGlow(screen *ebiten.Image, anchor Rect, level float64, c Color) {
	if level <= 0 {
		return
	}
	radius := math.Max(anchor.Width, anchor.Height)/2 + 6
	verts, inds := appendCircle(nil, nil, anchor.Center(), radius, c.WithAlpha(0.6*level))
	screen.DrawTriangles(verts, inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
}

// layoutDiscs computes the palette's circles in draw order. Item centers use
// Picker.Layout, the same offsets hit testing uses, scaled about the palette
// center by the open animation.
func (r *PickerRenderer) layoutDiscs(dst []disc, p *Picker, cats []Category) []disc {
	v := p.Visual()
	if p.Phase() == PhaseClosed || v.Alpha <= 0 {
		return dst
	}
	byID := make(map[CategoryID]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	l := p.Tuning().Layout
	center := v.Center()
	scale := v.Scale
	alpha := v.Alpha
	h := p.Highlight()
	st := r.Style

	dst = append(dst, disc{Center: center, Radius: l.Radius * scale, Color: st.Background.WithAlpha(alpha)})

	noneR := (l.ItemSize + noneButtonPadding) / 2 * scale
	if h.Kind == HighlightRemove {
		dst = append(dst, disc{Center: center, Radius: noneR + ringWidth, Color: st.Ring.WithAlpha(alpha)})
	}
	dst = append(dst, disc{Center: center, Radius: noneR, Color: st.None.WithAlpha(alpha), Label: "x"})

	refs := p.Categories()
	offsets := p.Layout()
	itemR := l.ItemSize / 2 * scale
	for i, off := range offsets {
		ref := refs[i]
		cat, ok := byID[ref.ID]
		c := PaletteColor(cat.ColorID)
		label := ""
		if ok && cat.Name != "" {
			label = string([]rune(cat.Name)[:1])
		}
		pos := Vec2{X: center.X + off.X*scale, Y: center.Y + off.Y*scale}
		if h.Kind == HighlightCategory && h.CategoryID == ref.ID {
			dst = append(dst, disc{Center: pos, Radius: itemR + ringWidth, Color: st.Ring.WithAlpha(alpha)})
		}
		dst = append(dst, disc{Center: pos, Radius: itemR, Color: c.WithAlpha(alpha), Label: label})
	}
	return dst
}

// batchDiscs triangulates r.discs and hands the buffers to flush whenever the
// next circle would overflow the index range, and once at the end.
func (r *PickerRenderer) batchDiscs(flush func(verts []ebiten.Vertex, inds []uint16)) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, d := range r.discs {
		if len(r.verts)+circleSegments+1 > maxBatchVertices {
			flush(r.verts, r.inds)
			r.verts = r.verts[:0]
			r.inds = r.inds[:0]
		}
		r.verts, r.inds = appendCircle(r.verts, r.inds, d.Center, d.Radius, d.Color)
	}
	if len(r.verts) > 0 {
		flush(r.verts, r.inds)
	}
}

// appendCircle appends a fan-triangulated circle. Vertex colors are
// premultiplied.
func appendCircle(verts []ebiten.Vertex, inds []uint16, center Vec2, radius float64, c Color) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	verts = append(verts, vertex(center.X, center.Y))
	for i := 0; i < circleSegments; i++ {
		sin, cos := math.Sincos(float64(i) / circleSegments * 2 * math.Pi)
		verts = append(verts, vertex(center.X+cos*radius, center.Y+sin*radius))
	}
	for i := 0; i < circleSegments; i++ {
		next := (i+1)%circleSegments + 1
		inds = append(inds, base, base+uint16(i+1), base+uint16(next))
	}
	return verts, inds
}
