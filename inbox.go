package buckets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// defaultIcon is used when a new category is created without one.
const defaultIcon = "🌿"

// Inbox is the task-management service behind the inbox screen: capture,
// completion, bucket drops and picker commits, on top of a Store.
type Inbox struct {
	store    Store
	feedback *GatedFeedback
	logger   *slog.Logger
	now      func() time.Time
}

// InboxOption configures an Inbox.
type InboxOption func(*Inbox)

// WithFeedback sets the haptic emitter. It is gated by the user's haptics
// setting.
func WithFeedback(f Feedback) InboxOption {
	return func(in *Inbox) { in.feedback.Out = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) InboxOption {
	return func(in *Inbox) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) InboxOption {
	return func(in *Inbox) { in.now = now }
}

// NewInbox creates an Inbox over store.
func NewInbox(store Store, opts ...InboxOption) *Inbox {
	in := &Inbox{
		store:    store,
		feedback: &GatedFeedback{Enabled: true},
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Feedback returns the settings-gated emitter so the picker can share it.
func (in *Inbox) Feedback() Feedback {
	return in.feedback
}

// Load applies persisted settings and seeds the default categories into an
// empty store.
func (in *Inbox) Load(ctx context.Context) error {
	settings, err := in.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	in.feedback.Enabled = settings.HapticsOn
	if _, err := in.EnsureDefaultCategories(ctx); err != nil {
		return err
	}
	return nil
}

// Settings returns the persisted settings.
func (in *Inbox) Settings(ctx context.Context) (Settings, error) {
	return in.store.Settings(ctx)
}

// SetHaptics persists the haptics preference and applies it immediately.
func (in *Inbox) SetHaptics(ctx context.Context, on bool) error {
	settings, err := in.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings.HapticsOn = on
	if err := in.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	in.feedback.Enabled = on
	return nil
}

// EnsureDefaultCategories seeds the preset buckets when none exist. It
// reports whether anything was created.
func (in *Inbox) EnsureDefaultCategories(ctx context.Context) (bool, error) {
	cats, err := in.store.Categories(ctx)
	if err != nil {
		return false, fmt.Errorf("list categories: %w", err)
	}
	if len(cats) > 0 {
		return false, nil
	}
	for i, p := range DefaultPresets() {
		c := Category{
			ID:        NewCategoryID(),
			Name:      p.Name,
			ColorID:   p.ColorID,
			Icon:      p.Icon,
			SortOrder: i,
		}
		if err := in.store.CreateCategory(ctx, c); err != nil {
			return false, fmt.Errorf("seed category %q: %w", p.Name, err)
		}
	}
	in.logger.Info("seeded default categories", "count", len(DefaultPresets()))
	return true, nil
}

// OpenTasks returns incomplete tasks, newest first.
func (in *Inbox) OpenTasks(ctx context.Context) ([]Task, error) {
	return in.store.Tasks(ctx, TaskFilter{})
}

// Categories returns categories by sort order.
func (in *Inbox) Categories(ctx context.Context) ([]Category, error) {
	return in.store.Categories(ctx)
}

// CategoryRefs returns the picker snapshot of the current categories.
func (in *Inbox) CategoryRefs(ctx context.Context) ([]CategoryRef, error) {
	cats, err := in.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return CategoryRefs(cats), nil
}

// QuickAdd captures a new task. The title is trimmed; the task lands in the
// sort-order-0 bucket when one exists.
func (in *Inbox) QuickAdd(ctx context.Context, title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	cats, err := in.store.Categories(ctx)
	if err != nil {
		return Task{}, fmt.Errorf("list categories: %w", err)
	}
	t := Task{
		ID:        NewTaskID(),
		Title:     title,
		CreatedAt: in.now(),
	}
	for _, c := range cats {
		if c.SortOrder == 0 {
			id := c.ID
			t.CategoryID = &id
			break
		}
	}
	if err := in.store.CreateTask(ctx, t); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	in.feedback.Play(HapticTapLight)
	in.logger.Debug("task added", "task", t.ID)
	return t, nil
}

// Toggle flips a task's completion and stamps or clears CompletedAt.
func (in *Inbox) Toggle(ctx context.Context, id TaskID) (Task, error) {
	t, err := in.store.Task(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("toggle %s: %w", id, err)
	}
	t.Done = !t.Done
	if t.Done {
		now := in.now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	if err := in.store.UpdateTask(ctx, t); err != nil {
		return Task{}, fmt.Errorf("toggle %s: %w", id, err)
	}
	in.feedback.Play(HapticCompleteSuccess)
	return t, nil
}

// Assign moves the given tasks into a bucket, as when they are dropped on a
// bucket orb. Unknown task IDs are skipped. It returns how many tasks moved.
func (in *Inbox) Assign(ctx context.Context, ids []TaskID, category CategoryID) (int, error) {
	if _, err := in.store.Category(ctx, category); err != nil {
		return 0, fmt.Errorf("assign: %w", err)
	}
	n := 0
	for _, id := range ids {
		t, err := in.store.Task(ctx, id)
		if errors.Is(err, ErrTaskNotFound) {
			continue
		}
		if err != nil {
			return n, fmt.Errorf("assign %s: %w", id, err)
		}
		c := category
		t.CategoryID = &c
		if err := in.store.UpdateTask(ctx, t); err != nil {
			if errors.Is(err, ErrTaskNotFound) {
				continue
			}
			return n, fmt.Errorf("assign %s: %w", id, err)
		}
		n++
	}
	if n > 0 {
		in.feedback.Play(HapticDropSuccess)
	}
	return n, nil
}

// AssignCategory sets or, with a nil category, clears one task's bucket. It
// returns ErrTaskNotFound when the task was deleted.
func (in *Inbox) AssignCategory(ctx context.Context, id TaskID, category *CategoryID) error {
	t, err := in.store.Task(ctx, id)
	if err != nil {
		return fmt.Errorf("assign %s: %w", id, err)
	}
	if category != nil {
		if _, err := in.store.Category(ctx, *category); err != nil {
			return fmt.Errorf("assign %s: %w", id, err)
		}
		c := *category
		t.CategoryID = &c
	} else {
		t.CategoryID = nil
	}
	if err := in.store.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("assign %s: %w", id, err)
	}
	return nil
}

// Assigner binds AssignCategory to ctx for use by a Picker.
func (in *Inbox) Assigner(ctx context.Context) Assigner {
	return AssignerFunc(func(task TaskID, category *CategoryID) error {
		return in.AssignCategory(ctx, task, category)
	})
}

// CreateCategory adds a bucket after the existing ones. Only the last
// character of icon is kept.
func (in *Inbox) CreateCategory(ctx context.Context, name, icon string, color Color) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	if icon == "" {
		icon = defaultIcon
	} else {
		r, _ := utf8.DecodeLastRuneInString(icon)
		icon = string(r)
	}
	cats, err := in.store.Categories(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("list categories: %w", err)
	}
	next := len(cats)
	if len(cats) > 0 {
		next = cats[len(cats)-1].SortOrder + 1
	}
	c := Category{
		ID:        NewCategoryID(),
		Name:      name,
		ColorID:   HexString(color),
		Icon:      icon,
		SortOrder: next,
	}
	if err := in.store.CreateCategory(ctx, c); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	in.feedback.Play(HapticTapLight)
	return c, nil
}

// DeleteTasks removes tasks. Already-deleted IDs are ignored.
func (in *Inbox) DeleteTasks(ctx context.Context, ids []TaskID) error {
	var errs []error
	for _, id := range ids {
		if err := in.store.DeleteTask(ctx, id); err != nil && !errors.Is(err, ErrTaskNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
