// Package sqlite implements buckets.Store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/phanxgames/buckets"
)

// Schema for the task store. Tasks die with their category.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    color_id    TEXT NOT NULL,
    icon        TEXT NOT NULL,
    sort_order  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id            TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    notes         TEXT NOT NULL DEFAULT '',
    due_ns        INTEGER,
    done          INTEGER NOT NULL DEFAULT 0,
    created_ns    INTEGER NOT NULL,
    completed_ns  INTEGER,
    priority      INTEGER,
    tags          TEXT NOT NULL DEFAULT '[]',
    category_id   TEXT REFERENCES categories(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_ns);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category_id);

CREATE TABLE IF NOT EXISTS settings (
    id             INTEGER PRIMARY KEY CHECK (id = 1),
    haptics_on     INTEGER NOT NULL,
    sounds_on      INTEGER NOT NULL,
    companion      TEXT NOT NULL,
    cloud_sync_on  INTEGER NOT NULL
);
`

const taskColumns = `id, title, notes, due_ns, done, created_ns, completed_ns, priority, tags, category_id`

// Store is a buckets.Store backed by a SQLite database.
type Store struct {
	db *sql.DB
}

var _ buckets.Store = (*Store)(nil)

// Open opens or creates the database at path and applies the schema. The
// special path ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	memory := path == ":memory:"
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if memory {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// --- Tasks ---

func (s *Store) CreateTask(ctx context.Context, t buckets.Task) error {
	args, err := taskArgs(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Store) Task(ctx context.Context, id buckets.TaskID) (buckets.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return buckets.Task{}, buckets.ErrTaskNotFound
		}
		return buckets.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t buckets.Task) error {
	args, err := taskArgs(t)
	if err != nil {
		return err
	}
	// Move id to the WHERE clause.
	args = append(args[1:], args[0])
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, notes = ?, due_ns = ?, done = ?, created_ns = ?,
		    completed_ns = ?, priority = ?, tags = ?, category_id = ?
		WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res, buckets.ErrTaskNotFound)
}

func (s *Store) DeleteTask(ctx context.Context, id buckets.TaskID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, buckets.ErrTaskNotFound)
}

func (s *Store) Tasks(ctx context.Context, filter buckets.TaskFilter) ([]buckets.Task, error) {
	var where []string
	var args []any
	if !filter.IncludeDone {
		where = append(where, "done = 0")
	}
	if filter.Category != nil {
		where = append(where, "category_id = ?")
		args = append(args, filter.Category.String())
	}
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_ns DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []buckets.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// --- Categories ---

func (s *Store) CreateCategory(ctx context.Context, c buckets.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color_id, icon, sort_order)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID.String(), c.Name, c.ColorID, c.Icon, c.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (s *Store) Category(ctx context.Context, id buckets.CategoryID) (buckets.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color_id, icon, sort_order FROM categories WHERE id = ?`, id.String())
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return buckets.Category{}, buckets.ErrCategoryNotFound
		}
		return buckets.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *Store) Categories(ctx context.Context) ([]buckets.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color_id, icon, sort_order FROM categories
		ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []buckets.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cats, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id buckets.CategoryID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res, buckets.ErrCategoryNotFound)
}

// --- Settings ---

func (s *Store) Settings(ctx context.Context) (buckets.Settings, error) {
	var st buckets.Settings
	err := s.db.QueryRowContext(ctx, `
		SELECT haptics_on, sounds_on, companion, cloud_sync_on FROM settings WHERE id = 1`,
	).Scan(&st.HapticsOn, &st.SoundsOn, &st.Companion, &st.CloudSyncOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return buckets.DefaultSettings(), nil
		}
		return buckets.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return st, nil
}

func (s *Store) SaveSettings(ctx context.Context, st buckets.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, haptics_on, sounds_on, companion, cloud_sync_on)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    haptics_on = excluded.haptics_on,
		    sounds_on = excluded.sounds_on,
		    companion = excluded.companion,
		    cloud_sync_on = excluded.cloud_sync_on`,
		st.HapticsOn, st.SoundsOn, st.Companion, st.CloudSyncOn,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// --- Row mapping ---

type scanner interface {
	Scan(dest ...any) error
}

func taskArgs(t buckets.Task) ([]any, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	tagJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	var category sql.NullString
	if t.CategoryID != nil {
		category = sql.NullString{String: t.CategoryID.String(), Valid: true}
	}
	var priority sql.NullInt64
	if t.Priority != nil {
		priority = sql.NullInt64{Int64: int64(*t.Priority), Valid: true}
	}

	return []any{
		t.ID.String(),
		t.Title,
		t.Notes,
		nullTime(t.Due),
		t.Done,
		t.CreatedAt.UnixNano(),
		nullTime(t.CompletedAt),
		priority,
		string(tagJSON),
		category,
	}, nil
}

func scanTask(row scanner) (buckets.Task, error) {
	var (
		t                       buckets.Task
		id, tags                string
		createdNs               int64
		dueNs, completedNs, pri sql.NullInt64
		category                sql.NullString
	)
	if err := row.Scan(&id, &t.Title, &t.Notes, &dueNs, &t.Done, &createdNs,
		&completedNs, &pri, &tags, &category); err != nil {
		return buckets.Task{}, err
	}

	var err error
	if t.ID, err = buckets.ParseTaskID(id); err != nil {
		return buckets.Task{}, fmt.Errorf("task id %q: %w", id, err)
	}
	t.CreatedAt = time.Unix(0, createdNs)
	t.Due = timePtr(dueNs)
	t.CompletedAt = timePtr(completedNs)
	if pri.Valid {
		p := int(pri.Int64)
		t.Priority = &p
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return buckets.Task{}, fmt.Errorf("decode tags: %w", err)
	}
	if len(t.Tags) == 0 {
		t.Tags = nil
	}
	if category.Valid {
		cid, err := buckets.ParseCategoryID(category.String)
		if err != nil {
			return buckets.Task{}, fmt.Errorf("category id %q: %w", category.String, err)
		}
		t.CategoryID = &cid
	}
	return t, nil
}

func scanCategory(row scanner) (buckets.Category, error) {
	var c buckets.Category
	var id string
	if err := row.Scan(&id, &c.Name, &c.ColorID, &c.Icon, &c.SortOrder); err != nil {
		return buckets.Category{}, err
	}
	cid, err := buckets.ParseCategoryID(id)
	if err != nil {
		return buckets.Category{}, fmt.Errorf("category id %q: %w", id, err)
	}
	c.ID = cid
	return c, nil
}

func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func timePtr(ns sql.NullInt64) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := time.Unix(0, ns.Int64)
	return &t
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
