// Package keybind maps terminal key events to list navigation actions.
package keybind

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// ErrInvalidKey is returned for key strings that no terminal event produces.
var ErrInvalidKey = errors.New("invalid key")

// Keybind is a set of equivalent keys and the description shown in help.
type Keybind struct {
	keys []string
	desc string
}

// NewKeybind returns a binding of keys described by desc. Keys that do not
// parse are dropped.
func NewKeybind(desc string, keys ...string) Keybind {
	kb := Keybind{desc: desc}
	for _, key := range keys {
		if k, err := Normalize(key); err == nil && !slices.Contains(kb.keys, k) {
			kb.keys = append(kb.keys, k)
		}
	}
	return kb
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k Keybind) Desc() string {
	return k.desc
}

// Enabled reports whether the binding has at least one key.
func (k Keybind) Enabled() bool {
	return len(k.keys) > 0
}

// Label is the key column of the help bar: the first two keys, arrows drawn
// as glyphs.
func (k Keybind) Label() string {
	labels := make([]string, 0, 2)
	for _, key := range k.keys[:min(len(k.keys), 2)] {
		switch key {
		case "up":
			key = "↑"
		case "down":
			key = "↓"
		}
		labels = append(labels, key)
	}
	return strings.Join(labels, "/")
}

// Matches reports whether event is one of the bound keys.
func (k Keybind) Matches(event *tcell.EventKey) bool {
	if event == nil {
		return false
	}
	return slices.Contains(k.keys, eventKeyString(event))
}

func (k Keybind) without(keys []string) Keybind {
	k.keys = slices.DeleteFunc(slices.Clone(k.keys), func(key string) bool {
		return slices.Contains(keys, key)
	})
	return k
}

// Normalize returns the canonical form of a key string such as "Ctrl+F" or
// "PageDown". Modifiers come first in a fixed order.
func Normalize(key string) (string, error) {
	var mods []string
	primary := ""
	for _, part := range strings.Split(strings.TrimSpace(key), "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
			continue
		case "ctrl", "control":
			mods = append(mods, "ctrl")
		case "alt":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "meta":
			mods = append(mods, "meta")
		default:
			if primary != "" {
				return "", fmt.Errorf("%w: %q has two keys", ErrInvalidKey, key)
			}
			primary = part
		}
	}
	if primary == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if len([]rune(primary)) == 1 {
		if len(mods) > 0 {
			primary = strings.ToLower(primary)
		}
	} else {
		name, ok := keyAliases[strings.ToLower(primary)]
		if !ok {
			return "", fmt.Errorf("%w: unknown key name %q", ErrInvalidKey, primary)
		}
		primary = name
	}
	return joinMods(mods, primary), nil
}

// normalizeKey is Normalize without the error.
func normalizeKey(key string) string {
	k, _ := Normalize(key)
	return k
}

func joinMods(mods []string, primary string) string {
	if len(mods) == 0 {
		return primary
	}
	order := []string{"ctrl", "alt", "shift", "meta"}
	sorted := make([]string, 0, len(order)+1)
	for _, m := range order {
		if slices.Contains(mods, m) {
			sorted = append(sorted, m)
		}
	}
	return strings.Join(append(sorted, primary), "+")
}

// keyAliases maps accepted spellings of named keys to their canonical name.
var keyAliases = func() map[string]string {
	aliases := map[string]string{
		"escape":   "esc",
		"return":   "enter",
		"pageup":   "pgup",
		"pagedown": "pgdn",
		"del":      "delete",
	}
	for _, name := range keyNames {
		aliases[name] = name
	}
	aliases["space"] = "space"
	for i := 1; i <= 12; i++ {
		aliases[fmt.Sprintf("f%d", i)] = fmt.Sprintf("f%d", i)
	}
	return aliases
}()

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

// eventKeyString renders event in the form Normalize produces.
func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	// Tab, enter and backspace share codes with ctrl keys.
	if _, named := keyNames[key]; !named && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	var mods []string
	if event.Modifiers()&tcell.ModCtrl != 0 {
		mods = append(mods, "ctrl")
	}
	if event.Modifiers()&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}
	if event.Modifiers()&tcell.ModMeta != 0 {
		mods = append(mods, "meta")
	}

	var primary string
	switch {
	case key == tcell.KeyRune:
		primary = event.Str()
		if primary == " " {
			primary = "space"
		} else if len(mods) > 0 {
			primary = strings.ToLower(primary)
		}
		// Shift is already part of the rune.
		return joinMods(mods, primary)
	case key == tcell.KeyBacktab:
		return joinMods(append(mods, "shift"), "tab")
	case key >= tcell.KeyF1 && key <= tcell.KeyF12:
		primary = fmt.Sprintf("f%d", key-tcell.KeyF1+1)
	default:
		name, ok := keyNames[key]
		if !ok {
			return ""
		}
		primary = name
	}
	if event.Modifiers()&tcell.ModShift != 0 {
		mods = append(mods, "shift")
	}
	return joinMods(mods, primary)
}
