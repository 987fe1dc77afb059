package config

import (
	"fmt"
	"strings"
)

// ValidationError is one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, validatePicker(&c.Picker)...)
	errs = append(errs, validateLogging(&c.Logging)...)
	errs = append(errs, validateWindow(&c.Window)...)
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, ValidationError{Field: "storage.path", Message: "must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePicker(p *PickerConfig) ValidationErrors {
	var errs ValidationErrors
	if p.PaletteRadius <= 0 {
		errs = append(errs, ValidationError{Field: "picker.palette_radius", Message: "must be positive"})
	}
	if p.ItemSize <= 0 {
		errs = append(errs, ValidationError{Field: "picker.item_size", Message: "must be positive"})
	}
	if p.NoneThreshold < 0 {
		errs = append(errs, ValidationError{Field: "picker.none_threshold", Message: "must not be negative"})
	}
	if p.ItemThreshold <= 0 {
		errs = append(errs, ValidationError{Field: "picker.item_threshold", Message: "must be positive"})
	}
	if p.DragDeadZone < 0 {
		errs = append(errs, ValidationError{Field: "picker.drag_dead_zone", Message: "must not be negative"})
	}
	durations := []struct {
		field string
		ms    int
	}{
		{"picker.hold_delay_ms", p.HoldDelayMs},
		{"picker.open_duration_ms", p.OpenDurationMs},
		{"picker.reanchor_duration_ms", p.ReanchorDurationMs},
		{"picker.glow_hold_ms", p.GlowHoldMs},
		{"picker.glow_fade_ms", p.GlowFadeMs},
	}
	for _, d := range durations {
		if d.ms < 0 {
			errs = append(errs, ValidationError{Field: d.field, Message: "must not be negative"})
		}
	}
	return errs
}

func validateLogging(l *LoggingConfig) ValidationErrors {
	var errs ValidationErrors
	if _, err := l.SlogLevel(); err != nil {
		errs = append(errs, ValidationError{Field: "logging.level", Message: err.Error()})
	}
	switch strings.ToLower(l.Format) {
	case "", FormatText, FormatJSON:
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (want text or json)", l.Format),
		})
	}
	return errs
}

func validateWindow(w *WindowConfig) ValidationErrors {
	var errs ValidationErrors
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, ValidationError{
			Field:   "window",
			Message: fmt.Sprintf("invalid size %dx%d", w.Width, w.Height),
		})
	}
	return errs
}
