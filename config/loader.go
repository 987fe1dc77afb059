package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const debounceDelay = 100 * time.Millisecond

// Load reads path, applies environment overrides and validates the result.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// Update is the outcome of one reload. Exactly one of Config and Err is set.
type Update struct {
	Config *Config
	Err    error
}

// Loader loads a configuration file and reloads it when it changes.
type Loader struct {
	path    string
	updates chan Update

	mu      sync.Mutex
	current *Config
	stop    context.CancelFunc
	done    chan struct{}
	closed  bool
}

// NewLoader creates a loader for path.
func NewLoader(path string) *Loader {
	return &Loader{path: path, updates: make(chan Update, 1)}
}

// Load reads and validates the file.
func (l *Loader) Load() (*Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Config returns the last successfully loaded configuration.
func (l *Loader) Config() *Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Updates delivers reload results. An undelivered result is replaced by a
// newer one. The channel is closed by Close.
func (l *Loader) Updates() <-chan Update {
	return l.updates
}

// Watch reloads the file after it is written, debounced. An invalid file is
// reported on Updates and keeps the previous configuration. Watching stops
// when ctx is done or Close is called.
func (l *Loader) Watch(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.New("config loader closed")
	}
	if l.stop != nil {
		return errors.New("config loader already watching")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(l.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(l.path), err)
	}

	ctx, l.stop = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx, w)
	return nil
}

func (l *Loader) run(ctx context.Context, w *fsnotify.Watcher) {
	defer close(l.done)
	defer w.Close()

	name := filepath.Base(l.path)
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == name && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				settle = time.After(debounceDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.publish(Update{Err: fmt.Errorf("watch config: %w", err)})
		case <-settle:
			settle = nil
			cfg, err := Load(l.path)
			if err != nil {
				l.publish(Update{Err: fmt.Errorf("reload config: %w", err)})
				continue
			}
			l.mu.Lock()
			l.current = cfg
			l.mu.Unlock()
			l.publish(Update{Config: cfg})
		}
	}
}

// publish must only be called from the watch goroutine, which is the sole
// sender.
func (l *Loader) publish(u Update) {
	select {
	case <-l.updates:
	default:
	}
	l.updates <- u
}

// Close stops watching and closes Updates. It is safe to call more than once.
func (l *Loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	stop, done := l.stop, l.done
	l.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
	close(l.updates)
	return nil
}

// loadConfigFromFile reads and decodes path by extension on top of the
// defaults.
func loadConfigFromFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	return cfg, nil
}
