package buckets

import (
	"math"

	"github.com/google/uuid"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha scaled by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions, offsets and pointer samples
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Len returns the distance from the origin.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// TaskID identifies a task.
type TaskID uuid.UUID

// NewTaskID returns a random task identifier.
func NewTaskID() TaskID { return TaskID(uuid.New()) }

// ParseTaskID parses the canonical string form of a task identifier.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	return TaskID(id), err
}

func (id TaskID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero identifier.
func (id TaskID) IsZero() bool { return id == TaskID{} }

// CategoryID identifies a category (bucket).
type CategoryID uuid.UUID

// NewCategoryID returns a random category identifier.
func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

// ParseCategoryID parses the canonical string form of a category identifier.
func ParseCategoryID(s string) (CategoryID, error) {
	id, err := uuid.Parse(s)
	return CategoryID(id), err
}

func (id CategoryID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero identifier.
func (id CategoryID) IsZero() bool { return id == CategoryID{} }

// EventType identifies a kind of picker event.
type EventType uint8

const (
	EventOpened           EventType = iota // a picker session was created
	EventHighlightChanged                  // the highlighted target changed
	EventCommitted                         // a selection was applied to the anchored task
	EventCancelled                         // the session closed without a selection
	EventReanchored                        // the anchor rectangle moved while open
)

func (e EventType) String() string {
	switch e {
	case EventOpened:
		return "opened"
	case EventHighlightChanged:
		return "highlight_changed"
	case EventCommitted:
		return "committed"
	case EventCancelled:
		return "cancelled"
	case EventReanchored:
		return "reanchored"
	default:
		return "unknown"
	}
}

// Haptic identifies a discrete feedback pattern.
type Haptic uint8

const (
	HapticTapLight        Haptic = iota // light impact: open, quick add
	HapticSelection                     // selection tick: highlight changed
	HapticDropSuccess                   // medium impact: category applied
	HapticCompleteSuccess               // success notification: task completed
)

func (h Haptic) String() string {
	switch h {
	case HapticTapLight:
		return "tap_light"
	case HapticSelection:
		return "selection"
	case HapticDropSuccess:
		return "drop_success"
	case HapticCompleteSuccess:
		return "complete_success"
	default:
		return "unknown"
	}
}
