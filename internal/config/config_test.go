package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/longview/keybind"
	"github.com/ayn2op/longview/window"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	s := cfg.Settings()
	assert.Equal(t, 0, s.ScrollBarSize)
	assert.InDelta(t, 1, s.MinThumbSize, 1e-9)
	assert.Equal(t, window.DefaultSettings().MaxScrollHeight, s.MaxScrollHeight)
	assert.Equal(t, 500*time.Millisecond, s.WheelWindow)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(`
[window]
max_scroll_height = 5000
wheel_window = "250ms"

[keys]
line-down = ["n"]

[store]
latency = "1s"
read_ahead = 50

[log]
level = "debug"

[ui]
border = "thick"
show_index = true
`)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Window.MaxScrollHeight)
	assert.Equal(t, 250*time.Millisecond, cfg.Window.WheelWindow.Duration)
	assert.Equal(t, 10, cfg.Window.CoalesceLimit, "missing fields keep defaults")
	assert.Equal(t, time.Second, cfg.Store.Latency.Duration)
	assert.Equal(t, 50, cfg.Store.ReadAhead)
	assert.True(t, cfg.UI.ShowIndex)
	assert.True(t, cfg.UI.ShowHelp)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	km := keybind.DefaultKeymap()
	require.NoError(t, cfg.ApplyKeys(km))
	assert.Equal(t, window.ActionLineDown, km.LookupKey("n"))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		doc     string
		section string
		field   string
		err     error
	}{
		{name: "negative", doc: "[window]\nscroll_to_offset = -1", section: "window", field: "scroll_to_offset", err: ErrNegative},
		{name: "zero limit", doc: "[window]\ncoalesce_limit = 0", section: "window", field: "coalesce_limit", err: ErrNotPositive},
		{name: "thumb", doc: "[window]\nmin_thumb_size = -2.5", section: "window", field: "min_thumb_size", err: ErrNegative},
		{name: "action", doc: "[keys]\njump = [\"x\"]", section: "keys", field: "jump", err: ErrUnknownAction},
		{name: "bad key", doc: "[keys]\nline-down = [\"ctrl+\"]", section: "keys", field: "line-down", err: keybind.ErrInvalidKey},
		{name: "latency", doc: "[store]\nlatency = \"-1s\"", section: "store", field: "latency", err: ErrNegative},
		{name: "level", doc: "[log]\nlevel = \"loud\"", section: "log", field: "level", err: ErrUnknownLevel},
		{name: "border", doc: "[ui]\nborder = \"dotted\"", section: "ui", field: "border", err: ErrUnknownBorder},
		{name: "unknown key", doc: "[ui]\ncolour = \"red\"", field: "ui.colour", err: ErrUnknownKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.section, fe.Section)
			assert.Equal(t, tc.field, fe.Field)
		})
	}

	_, err := Parse("[window]\nwheel_window = \"soon\"")
	assert.Error(t, err)
	_, err = Parse("not toml = = =")
	assert.Error(t, err)
}

func TestFieldError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "config: [window] wheel_step: must be positive",
		(&FieldError{Section: "window", Field: "wheel_step", Err: ErrNotPositive}).Error())
	assert.Equal(t, "config: ui.x: unknown key",
		(&FieldError{Field: "ui.x", Err: ErrUnknownKey}).Error())
	assert.Equal(t, "config: [keys]: unknown action",
		(&FieldError{Section: "keys", Err: ErrUnknownAction}).Error())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "longview", "config.toml"), path)

	cfg, got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[store]\nread_ahead = 7\n"), 0o644))
	cfg, _, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Store.ReadAhead)

	_, _, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
