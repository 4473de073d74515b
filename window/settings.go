package window

import (
	"log/slog"
	"time"
)

// Settings tunes the engine. The zero value is not usable; start from
// DefaultSettings.
type Settings struct {
	// Minimal container offset kept in scaled mode so that scrolling back up
	// still produces a scroll event.
	MinScrollTopScaled int
	// Minimal container offset in direct mode.
	MinScrollTopDirect int
	// Largest scroll area, in pixels, before switching to scaled mode.
	MaxScrollHeight int
	// Rows shown above the target of an external scroll-to request.
	ScrollToOffset int
	// Pixels reserved for a horizontal scrollbar below the rows.
	ScrollBarSize int
	// Minimal thumb height of the vertical scrollbar.
	MinThumbSize float64
	// Consecutive coalesced render requests before a render is forced.
	CoalesceLimit int
	// How long after a wheel event scroll input counts as wheel driven.
	WheelWindow time.Duration
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		MinScrollTopScaled: 100,
		MinScrollTopDirect: 0,
		MaxScrollHeight:    100000,
		ScrollToOffset:     5,
		ScrollBarSize:      8,
		MinThumbSize:       20,
		CoalesceLimit:      10,
		WheelWindow:        500 * time.Millisecond,
	}
}

func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.MaxScrollHeight <= 0 {
		s.MaxScrollHeight = d.MaxScrollHeight
	}
	if s.CoalesceLimit <= 0 {
		s.CoalesceLimit = d.CoalesceLimit
	}
	if s.WheelWindow <= 0 {
		s.WheelWindow = d.WheelWindow
	}
	s.MinScrollTopScaled = max(s.MinScrollTopScaled, 0)
	s.MinScrollTopDirect = max(s.MinScrollTopDirect, 0)
	s.ScrollToOffset = max(s.ScrollToOffset, 0)
	s.ScrollBarSize = max(s.ScrollBarSize, 0)
	s.MinThumbSize = max(s.MinThumbSize, 0)
	return s
}

// Option configures an Engine.
type Option func(*Engine)

// WithSettings replaces the default settings.
func WithSettings(settings Settings) Option {
	return func(e *Engine) {
		e.settings = settings.normalized()
	}
}

// WithLogger sets the logger used for rejected input and render tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the time source used to detect wheel-driven scrolling.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRenderFunc sets a callback invoked every time the row buffer changes.
func WithRenderFunc(fn func(r Range, rows []Slot)) Option {
	return func(e *Engine) {
		e.rendered = fn
	}
}
