package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/buckets"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, buckets.DefaultTuning(), cfg.Picker.Tuning())
	assert.True(t, strings.HasSuffix(cfg.Storage.Path, "buckets.db"), cfg.Storage.Path)
	assert.Contains(t, cfg.Storage.Path, ".buckets")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, FormatText, cfg.Logging.Format)
}

func TestLoadNonexistent(t *testing.T) {
	t.Setenv("BUCKETS_DB", "")
	t.Setenv("BUCKETS_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFormats(t *testing.T) {
	t.Setenv("BUCKETS_DB", "")
	t.Setenv("BUCKETS_LOG_LEVEL", "")

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "buckets.toml",
			content: `
[picker]
palette_radius = 140
none_threshold = 20
hold_delay_ms = 500

[storage]
path = "/tmp/tasks.db"

[logging]
level = "debug"
format = "json"
`,
		},
		{
			name: "yaml",
			file: "buckets.yaml",
			content: `
picker:
  palette_radius: 140
  none_threshold: 20
  hold_delay_ms: 500
storage:
  path: /tmp/tasks.db
logging:
  level: debug
  format: json
`,
		},
		{
			name: "json",
			file: "buckets.json",
			content: `{
  "picker": {"palette_radius": 140, "none_threshold": 20, "hold_delay_ms": 500},
  "storage": {"path": "/tmp/tasks.db"},
  "logging": {"level": "debug", "format": "json"}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, 140.0, cfg.Picker.PaletteRadius)
			assert.Equal(t, 20.0, cfg.Picker.NoneThreshold)
			assert.Equal(t, 500, cfg.Picker.HoldDelayMs)
			// Unset fields keep their defaults.
			assert.Equal(t, Default().Picker.ItemSize, cfg.Picker.ItemSize)
			assert.Equal(t, "/tmp/tasks.db", cfg.Storage.Path)
			assert.Equal(t, "debug", cfg.Logging.Level)
			assert.Equal(t, FormatJSON, cfg.Logging.Format)

			tun := cfg.Picker.Tuning()
			assert.Equal(t, 140.0, tun.Layout.Radius)
			assert.Equal(t, float32(0.5), tun.HoldDelay)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "buckets.ini", "radius=1")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "buckets.toml", "[picker\nradius = ")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode TOML")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BUCKETS_DB", "/data/override.db")
	t.Setenv("BUCKETS_LOG_LEVEL", "warn")

	path := writeFile(t, t.TempDir(), "buckets.toml", "[storage]\npath = \"/tmp/file.db\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/override.db", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"radius", func(c *Config) { c.Picker.PaletteRadius = 0 }, "picker.palette_radius"},
		{"item size", func(c *Config) { c.Picker.ItemSize = -1 }, "picker.item_size"},
		{"none threshold", func(c *Config) { c.Picker.NoneThreshold = -1 }, "picker.none_threshold"},
		{"item threshold", func(c *Config) { c.Picker.ItemThreshold = 0 }, "picker.item_threshold"},
		{"dead zone", func(c *Config) { c.Picker.DragDeadZone = -2 }, "picker.drag_dead_zone"},
		{"duration", func(c *Config) { c.Picker.GlowFadeMs = -1 }, "picker.glow_fade_ms"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"storage", func(c *Config) { c.Storage.Path = " " }, "storage.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestValidateZeroNoneThresholdAllowed(t *testing.T) {
	cfg := Default()
	cfg.Picker.NoneThreshold = 0
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LoggingConfig{Level: "warn", Format: FormatJSON}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "task", "a")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"task":"a"`)

	buf.Reset()
	logger, err = LoggingConfig{Level: "debug", Format: FormatText}.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")

	_, err = LoggingConfig{Level: "nope"}.NewLogger(&buf)
	assert.Error(t, err)
}

// nextUpdate waits for one reload result.
func nextUpdate(t *testing.T, l *Loader) Update {
	t.Helper()
	select {
	case u, ok := <-l.Updates():
		require.True(t, ok, "updates closed")
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
		return Update{}
	}
}

func TestLoaderWatchReload(t *testing.T) {
	t.Setenv("BUCKETS_DB", "")
	t.Setenv("BUCKETS_LOG_LEVEL", "")

	dir := t.TempDir()
	path := writeFile(t, dir, "buckets.toml", "[picker]\npalette_radius = 100\n")

	l := NewLoader(path)
	defer l.Close()

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Picker.PaletteRadius)
	assert.Same(t, cfg, l.Config())

	require.NoError(t, l.Watch(context.Background()))
	assert.Error(t, l.Watch(context.Background()))

	writeFile(t, dir, "buckets.toml", "[picker]\npalette_radius = 150\n")

	u := nextUpdate(t, l)
	require.NoError(t, u.Err)
	assert.Equal(t, 150.0, u.Config.Picker.PaletteRadius)
	assert.Equal(t, 150.0, l.Config().Picker.PaletteRadius)
}

func TestLoaderInvalidReloadKeepsConfig(t *testing.T) {
	t.Setenv("BUCKETS_DB", "")
	t.Setenv("BUCKETS_LOG_LEVEL", "")

	dir := t.TempDir()
	path := writeFile(t, dir, "buckets.toml", "[picker]\npalette_radius = 100\n")

	l := NewLoader(path)
	defer l.Close()
	_, err := l.Load()
	require.NoError(t, err)
	require.NoError(t, l.Watch(context.Background()))

	writeFile(t, dir, "buckets.toml", "[picker]\npalette_radius = -5\n")

	u := nextUpdate(t, l)
	require.Error(t, u.Err)
	assert.Nil(t, u.Config)
	assert.Contains(t, u.Err.Error(), "reload config")
	assert.Equal(t, 100.0, l.Config().Picker.PaletteRadius)
}

func TestLoaderKeepsNewestUpdate(t *testing.T) {
	l := NewLoader("")
	older, newer := Default(), Default()
	l.publish(Update{Config: older})
	l.publish(Update{Err: assert.AnError})
	l.publish(Update{Config: newer})

	u := <-l.Updates()
	assert.Same(t, newer, u.Config)
	select {
	case u := <-l.Updates():
		t.Fatalf("stale update still queued: %+v", u)
	default:
	}
}

func TestLoaderCloseEndsUpdates(t *testing.T) {
	for _, watch := range []bool{false, true} {
		l := NewLoader(filepath.Join(t.TempDir(), "buckets.toml"))
		if watch {
			require.NoError(t, l.Watch(context.Background()))
		}
		require.NoError(t, l.Close())
		require.NoError(t, l.Close())

		select {
		case _, ok := <-l.Updates():
			assert.False(t, ok, "watch=%v: updates still open", watch)
		case <-time.After(5 * time.Second):
			t.Fatalf("watch=%v: updates not closed", watch)
		}
		assert.Error(t, l.Watch(context.Background()))
	}
}

func TestLoaderStopsWithContext(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "buckets.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.Watch(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("close blocked after context cancel")
	}
}
