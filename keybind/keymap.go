package keybind

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/longview/window"
)

// Keymap binds keys to window actions and to the application commands that
// sit around the list.
type Keymap struct {
	actions map[window.Action]Keybind

	Help Keybind
	Quit Keybind
}

// DefaultKeymap returns the stock bindings: vi keys and arrows for lines,
// page keys for frames, g and G for the edges.
func DefaultKeymap() *Keymap {
	return &Keymap{
		actions: map[window.Action]Keybind{
			window.ActionLineUp:   NewKeybind("up", "k", "up"),
			window.ActionLineDown: NewKeybind("down", "j", "down"),
			window.ActionPageUp:   NewKeybind("page up", "ctrl+b", "pgup"),
			window.ActionPageDown: NewKeybind("page down", "space", "ctrl+f", "pgdn"),
			window.ActionHome:     NewKeybind("top", "g", "home"),
			window.ActionEnd:      NewKeybind("bottom", "G", "end"),
		},
		Help: NewKeybind("help", "?"),
		Quit: NewKeybind("quit", "q", "ctrl+c"),
	}
}

// Binding returns the keybind of a.
func (m *Keymap) Binding(a window.Action) Keybind {
	return m.actions[a]
}

// Set replaces the keys of a and keeps its description. Without keys the
// action is unbound. A key taken from another action is removed there.
func (m *Keymap) Set(a window.Action, keys ...string) error {
	if !slices.Contains(window.Actions(), a) {
		return fmt.Errorf("keybind: cannot bind %s", a)
	}
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		k, err := Normalize(key)
		if err != nil {
			return err
		}
		if !slices.Contains(normalized, k) {
			normalized = append(normalized, k)
		}
	}
	for other, kb := range m.actions {
		if other != a {
			m.actions[other] = kb.without(normalized)
		}
	}
	kb := m.actions[a]
	kb.keys = normalized
	m.actions[a] = kb
	return nil
}

// Lookup returns the action bound to event, or ActionNone.
func (m *Keymap) Lookup(event *tcell.EventKey) window.Action {
	if event == nil {
		return window.ActionNone
	}
	return m.lookup(eventKeyString(event))
}

// LookupKey returns the action bound to a key string such as "ctrl+f".
func (m *Keymap) LookupKey(key string) window.Action {
	return m.lookup(normalizeKey(key))
}

func (m *Keymap) lookup(key string) window.Action {
	if key == "" {
		return window.ActionNone
	}
	for _, a := range window.Actions() {
		if slices.Contains(m.actions[a].keys, key) {
			return a
		}
	}
	return window.ActionNone
}
