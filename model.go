package buckets

import (
	"cmp"
	"slices"
	"time"
)

// Task is a single inbox item.
type Task struct {
	ID          TaskID
	Title       string
	Notes       string
	Due         *time.Time
	Done        bool
	CreatedAt   time.Time
	CompletedAt *time.Time
	Priority    *int
	Tags        []string
	CategoryID  *CategoryID // nil when unassigned
}

// InCategory reports whether t is assigned to id.
func (t Task) InCategory(id CategoryID) bool {
	return t.CategoryID != nil && *t.CategoryID == id
}

// Category is a user-defined bucket.
type Category struct {
	ID        CategoryID
	Name      string
	ColorID   string // palette name or 8-digit hex
	Icon      string
	SortOrder int
}

// Ref returns the picker snapshot of c.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, DisplayOrder: c.SortOrder}
}

// Settings holds per-user preferences.
type Settings struct {
	HapticsOn   bool
	SoundsOn    bool
	Companion   string
	CloudSyncOn bool
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings() Settings {
	return Settings{
		HapticsOn:   true,
		SoundsOn:    true,
		Companion:   "Glow",
		CloudSyncOn: true,
	}
}

// CategoryRef is the read-only view of a category the picker lays out.
// Identity is by ID; DisplayOrder determines angular position.
type CategoryRef struct {
	ID           CategoryID
	DisplayOrder int
}

// CategoryRefs snapshots cats.
func CategoryRefs(cats []Category) []CategoryRef {
	refs := make([]CategoryRef, len(cats))
	for i, c := range cats {
		refs[i] = c.Ref()
	}
	return refs
}

// sortedRefs returns a copy of refs ordered by DisplayOrder. Equal orders keep
// their input order.
func sortedRefs(refs []CategoryRef) []CategoryRef {
	out := slices.Clone(refs)
	slices.SortStableFunc(out, func(a, b CategoryRef) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return out
}
