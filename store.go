package buckets

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// TaskFilter narrows Store.Tasks.
type TaskFilter struct {
	// IncludeDone also returns completed tasks.
	IncludeDone bool
	// Category limits results to one bucket when non-nil.
	Category *CategoryID
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t Task) bool {
	if !f.IncludeDone && t.Done {
		return false
	}
	if f.Category != nil && !t.InCategory(*f.Category) {
		return false
	}
	return true
}

// Store persists tasks, categories and settings. Implementations must be safe
// for concurrent use. Lookups of missing records return ErrTaskNotFound or
// ErrCategoryNotFound.
type Store interface {
	CreateTask(ctx context.Context, t Task) error
	Task(ctx context.Context, id TaskID) (Task, error)
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, id TaskID) error
	// Tasks returns matching tasks, newest first.
	Tasks(ctx context.Context, filter TaskFilter) ([]Task, error)

	CreateCategory(ctx context.Context, c Category) error
	Category(ctx context.Context, id CategoryID) (Category, error)
	// Categories returns all categories by ascending sort order.
	Categories(ctx context.Context) ([]Category, error)
	// DeleteCategory removes the category and every task in it.
	DeleteCategory(ctx context.Context, id CategoryID) error

	Settings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu         sync.RWMutex
	tasks      map[TaskID]Task
	categories map[CategoryID]Category
	settings   Settings
}

// NewMemoryStore returns an empty store with default settings.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:      make(map[TaskID]Task),
		categories: make(map[CategoryID]Category),
		settings:   DefaultSettings(),
	}
}

func (s *MemoryStore) CreateTask(ctx context.Context, t Task) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *MemoryStore) Task(ctx context.Context, id TaskID) (Task, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, t Task) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return ErrTaskNotFound
	}
	s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id TaskID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) Tasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t) {
			out = append(out, cloneTask(t))
		}
	}
	slices.SortFunc(out, func(a, b Task) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, c Category) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *MemoryStore) Category(ctx context.Context, id CategoryID) (Category, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (s *MemoryStore) Categories(ctx context.Context) ([]Category, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Category) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id CategoryID) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(s.categories, id)
	for tid, t := range s.tasks {
		if t.InCategory(id) {
			delete(s.tasks, tid)
		}
	}
	return nil
}

func (s *MemoryStore) Settings(ctx context.Context) (Settings, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *MemoryStore) SaveSettings(ctx context.Context, settings Settings) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func cloneTask(t Task) Task {
	t.Tags = slices.Clone(t.Tags)
	if t.Due != nil {
		d := *t.Due
		t.Due = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	if t.Priority != nil {
		p := *t.Priority
		t.Priority = &p
	}
	if t.CategoryID != nil {
		c := *t.CategoryID
		t.CategoryID = &c
	}
	return t
}
