package buckets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Preset is a built-in category template.
type Preset struct {
	Name    string
	Icon    string
	ColorID string
}

// DefaultPreset is the catch-all bucket every inbox starts with at sort
// order 0. Its color is also the fallback for unknown color IDs.
var DefaultPreset = Preset{Name: "Inbox", Icon: "tray.fill", ColorID: "Inbox"}

var paletteColors = map[string]Color{
	"Inbox":    {0.85, 0.9, 0.95, 1},
	"Work":     {0.45, 0.63, 0.95, 1},
	"Home":     {0.62, 0.78, 0.63, 1},
	"Errands":  {0.98, 0.74, 0.57, 1},
	"Health":   {0.74, 0.69, 0.96, 1},
	"Play":     {0.98, 0.64, 0.78, 1},
	"Learning": {0.54, 0.79, 0.84, 1},
	"Calm":     {0.73, 0.87, 0.92, 1},
}

// DefaultPresets returns the categories seeded into an empty inbox, in sort
// order.
func DefaultPresets() []Preset {
	return []Preset{
		DefaultPreset,
		{"Work", "briefcase.fill", "Work"},
		{"Home", "house.fill", "Home"},
		{"Errands", "cart.fill", "Errands"},
		{"Health", "heart.fill", "Health"},
		{"Play", "gamecontroller.fill", "Play"},
		{"Learning", "book.fill", "Learning"},
	}
}

// PaletteColor resolves a color ID: a palette name, then an RGB/RGBA hex
// string. Empty or unresolvable IDs fall back to the Inbox color.
func PaletteColor(id string) Color {
	if c, ok := paletteColors[id]; ok {
		return c
	}
	if c, err := ParseHex(id); err == nil {
		return c
	}
	return paletteColors[DefaultPreset.ColorID]
}

// ParseHex parses "RRGGBB" or "RRGGBBAA", ignoring any non-alphanumeric
// characters such as a leading '#'.
func ParseHex(s string) (Color, error) {
	hex := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float64(v>>24&0xFF) / 255,
		G: float64(v>>16&0xFF) / 255,
		B: float64(v>>8&0xFF) / 255,
		A: float64(v&0xFF) / 255,
	}, nil
}

// HexString formats c as 8 uppercase hex digits (RRGGBBAA).
func HexString(c Color) string {
	return fmt.Sprintf("%02X%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
