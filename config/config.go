// Package config loads and validates settings for buckets hosts: picker
// tuning, storage, logging and the window.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phanxgames/buckets"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// MemoryPath selects the in-memory store instead of SQLite.
const MemoryPath = ":memory:"

// Config is the top-level configuration.
type Config struct {
	Picker  PickerConfig  `toml:"picker" yaml:"picker" json:"picker"`
	Storage StorageConfig `toml:"storage" yaml:"storage" json:"storage"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
	Window  WindowConfig  `toml:"window" yaml:"window" json:"window"`
}

// PickerConfig mirrors buckets.Tuning with durations in milliseconds.
type PickerConfig struct {
	PaletteRadius float64 `toml:"palette_radius" yaml:"palette_radius" json:"palette_radius"`
	ItemSize      float64 `toml:"item_size" yaml:"item_size" json:"item_size"`
	NoneThreshold float64 `toml:"none_threshold" yaml:"none_threshold" json:"none_threshold"`
	ItemThreshold float64 `toml:"item_threshold" yaml:"item_threshold" json:"item_threshold"`
	DragDeadZone  float64 `toml:"drag_dead_zone" yaml:"drag_dead_zone" json:"drag_dead_zone"`

	HoldDelayMs        int `toml:"hold_delay_ms" yaml:"hold_delay_ms" json:"hold_delay_ms"`
	OpenDurationMs     int `toml:"open_duration_ms" yaml:"open_duration_ms" json:"open_duration_ms"`
	ReanchorDurationMs int `toml:"reanchor_duration_ms" yaml:"reanchor_duration_ms" json:"reanchor_duration_ms"`
	GlowHoldMs         int `toml:"glow_hold_ms" yaml:"glow_hold_ms" json:"glow_hold_ms"`
	GlowFadeMs         int `toml:"glow_fade_ms" yaml:"glow_fade_ms" json:"glow_fade_ms"`
}

// StorageConfig selects the task store.
type StorageConfig struct {
	// Path is the SQLite database file, or MemoryPath.
	Path string `toml:"path" yaml:"path" json:"path"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

// WindowConfig configures the example host's window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title" json:"title"`
	Width  int    `toml:"width" yaml:"width" json:"width"`
	Height int    `toml:"height" yaml:"height" json:"height"`
}

// Default returns the stock configuration.
func Default() *Config {
	t := buckets.DefaultTuning()
	return &Config{
		Picker: PickerConfig{
			PaletteRadius:      t.Layout.Radius,
			ItemSize:           t.Layout.ItemSize,
			NoneThreshold:      t.Layout.NoneThreshold,
			ItemThreshold:      t.Layout.ItemThreshold,
			DragDeadZone:       t.DragDeadZone,
			HoldDelayMs:        toMillis(t.HoldDelay),
			OpenDurationMs:     toMillis(t.OpenDuration),
			ReanchorDurationMs: toMillis(t.ReanchorDuration),
			GlowHoldMs:         toMillis(t.GlowHold),
			GlowFadeMs:         toMillis(t.GlowFade),
		},
		Storage: StorageConfig{Path: DefaultDBPath()},
		Logging: LoggingConfig{Level: "info", Format: FormatText},
		Window:  WindowConfig{Title: "Buckets", Width: 480, Height: 800},
	}
}

// Dir returns the per-user data directory, ~/.buckets.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".buckets"
	}
	return filepath.Join(home, ".buckets")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	return filepath.Join(Dir(), "buckets.db")
}

// ApplyEnvOverrides applies BUCKETS_DB and BUCKETS_LOG_LEVEL.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BUCKETS_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("BUCKETS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Tuning converts the picker section to buckets.Tuning.
func (p PickerConfig) Tuning() buckets.Tuning {
	return buckets.Tuning{
		Layout: buckets.RadialLayout{
			Radius:        p.PaletteRadius,
			ItemSize:      p.ItemSize,
			NoneThreshold: p.NoneThreshold,
			ItemThreshold: p.ItemThreshold,
		},
		DragDeadZone:     p.DragDeadZone,
		HoldDelay:        fromMillis(p.HoldDelayMs),
		OpenDuration:     fromMillis(p.OpenDurationMs),
		ReanchorDuration: fromMillis(p.ReanchorDurationMs),
		GlowHold:         fromMillis(p.GlowHoldMs),
		GlowFade:         fromMillis(p.GlowFadeMs),
	}
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return level, nil
}

// NewLogger builds a text or JSON slog logger writing to w.
func (l LoggingConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(l.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func toMillis(sec float32) int {
	return int(time.Duration(float64(sec) * float64(time.Second)).Round(time.Millisecond) / time.Millisecond)
}

func fromMillis(ms int) float32 {
	return float32(ms) / 1000
}
