// Package config loads the TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ayn2op/longview"
	"github.com/ayn2op/longview/keybind"
	"github.com/ayn2op/longview/window"
)

// Config is the content of config.toml. Fields missing from the file keep
// the values of Default.
type Config struct {
	Window Window              `toml:"window"`
	Keys   map[string][]string `toml:"keys"`
	Store  Store               `toml:"store"`
	Log    Log                 `toml:"log"`
	UI     UI                  `toml:"ui"`
}

// Window holds the engine settings. Units are terminal cells.
type Window struct {
	MinScrollTopScaled int      `toml:"min_scroll_top_scaled"`
	MinScrollTopDirect int      `toml:"min_scroll_top_direct"`
	MaxScrollHeight    int      `toml:"max_scroll_height"`
	ScrollToOffset     int      `toml:"scroll_to_offset"`
	ScrollBarSize      int      `toml:"scroll_bar_size"`
	MinThumbSize       float64  `toml:"min_thumb_size"`
	CoalesceLimit      int      `toml:"coalesce_limit"`
	WheelWindow        Duration `toml:"wheel_window"`
	WheelStep          int      `toml:"wheel_step"`
}

type Store struct {
	Latency   Duration `toml:"latency"`
	ReadAhead int      `toml:"read_ahead"`
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

type UI struct {
	Border    string `toml:"border"`
	ShowIndex bool   `toml:"show_index"`
	ShowHelp  bool   `toml:"show_help"`
}

// Duration is a time.Duration written as a string such as "150ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// FieldError reports an invalid value in the configuration.
type FieldError struct {
	Section string
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: [%s]: %v", e.Section, e.Err)
	}
	if e.Section == "" {
		return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config: [%s] %s: %v", e.Section, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var (
	ErrNegative        = errors.New("must not be negative")
	ErrNotPositive     = errors.New("must be positive")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownLevel    = errors.New("unknown log level")
	ErrUnknownBorder   = errors.New("unknown border style")
)

// Default returns the configuration used when no file exists.
func Default() Config {
	s := window.DefaultSettings()
	return Config{
		Window: Window{
			MinScrollTopScaled: s.MinScrollTopScaled,
			MinScrollTopDirect: s.MinScrollTopDirect,
			MaxScrollHeight:    s.MaxScrollHeight,
			ScrollToOffset:     s.ScrollToOffset,
			// A terminal has no horizontal scrollbar and rows are one cell.
			ScrollBarSize: 0,
			MinThumbSize:  1,
			CoalesceLimit: s.CoalesceLimit,
			WheelWindow:   Duration{s.WheelWindow},
			WheelStep:     3,
		},
		Store: Store{
			Latency:   Duration{150 * time.Millisecond},
			ReadAhead: 200,
		},
		Log: Log{Level: "info"},
		UI:  UI{Border: "round", ShowHelp: true},
	}
}

// Path returns the default location of the configuration file.
func Path() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "longview", "config.toml"), nil
}

// Load reads the file at path, or at Path when path is empty. A missing file
// yields Default. The result is validated.
func Load(path string) (Config, string, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = Path(); err != nil {
			return Config{}, "", err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), path, nil
		}
		return Config{}, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(string(data))
	return cfg, path, err
}

// Parse decodes and validates a TOML document.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, &FieldError{Field: undecoded[0].String(), Err: ErrUnknownKey}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first problem found.
func (c Config) Validate() error {
	w := c.Window
	for _, f := range []struct {
		name  string
		value int
	}{
		{"min_scroll_top_scaled", w.MinScrollTopScaled},
		{"min_scroll_top_direct", w.MinScrollTopDirect},
		{"scroll_to_offset", w.ScrollToOffset},
		{"scroll_bar_size", w.ScrollBarSize},
	} {
		if f.value < 0 {
			return &FieldError{Section: "window", Field: f.name, Err: ErrNegative}
		}
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"max_scroll_height", w.MaxScrollHeight},
		{"coalesce_limit", w.CoalesceLimit},
		{"wheel_step", w.WheelStep},
		{"wheel_window", int(w.WheelWindow.Duration)},
	} {
		if f.value <= 0 {
			return &FieldError{Section: "window", Field: f.name, Err: ErrNotPositive}
		}
	}
	if w.MinThumbSize < 0 {
		return &FieldError{Section: "window", Field: "min_thumb_size", Err: ErrNegative}
	}

	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := window.ParseAction(name); err != nil {
			return &FieldError{Section: "keys", Field: name, Err: ErrUnknownAction}
		}
		for _, key := range c.Keys[name] {
			if _, err := keybind.Normalize(key); err != nil {
				return &FieldError{Section: "keys", Field: name, Err: err}
			}
		}
	}

	if c.Store.Latency.Duration < 0 {
		return &FieldError{Section: "store", Field: "latency", Err: ErrNegative}
	}
	if c.Store.ReadAhead < 0 {
		return &FieldError{Section: "store", Field: "read_ahead", Err: ErrNegative}
	}

	if _, err := c.Level(); err != nil {
		return &FieldError{Section: "log", Field: "level", Err: err}
	}
	if _, _, err := longview.ParseBorders(c.UI.Border); err != nil {
		return &FieldError{Section: "ui", Field: "border", Err: fmt.Errorf("%w: %q", ErrUnknownBorder, c.UI.Border)}
	}
	return nil
}

// Settings converts the [window] section into engine settings.
func (c Config) Settings() window.Settings {
	w := c.Window
	return window.Settings{
		MinScrollTopScaled: w.MinScrollTopScaled,
		MinScrollTopDirect: w.MinScrollTopDirect,
		MaxScrollHeight:    w.MaxScrollHeight,
		ScrollToOffset:     w.ScrollToOffset,
		ScrollBarSize:      w.ScrollBarSize,
		MinThumbSize:       w.MinThumbSize,
		CoalesceLimit:      w.CoalesceLimit,
		WheelWindow:        w.WheelWindow.Duration,
	}
}

// Level returns the configured log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, c.Log.Level)
	}
	return level, nil
}

// ApplyKeys rebinds the actions named in [keys].
func (c Config) ApplyKeys(km *keybind.Keymap) error {
	for name, keys := range c.Keys {
		action, err := window.ParseAction(name)
		if err != nil {
			return &FieldError{Section: "keys", Field: name, Err: ErrUnknownAction}
		}
		if err := km.Set(action, keys...); err != nil {
			return &FieldError{Section: "keys", Field: name, Err: err}
		}
	}
	return nil
}
