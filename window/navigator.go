package window

import (
	"fmt"
	"strings"
)

// Action is a discrete keyboard navigation move.
type Action uint8

const (
	ActionNone Action = iota
	ActionLineUp
	ActionLineDown
	ActionPageUp
	ActionPageDown
	ActionHome
	ActionEnd
)

var actionNames = map[Action]string{
	ActionLineUp:   "line-up",
	ActionLineDown: "line-down",
	ActionPageUp:   "page-up",
	ActionPageDown: "page-down",
	ActionHome:     "home",
	ActionEnd:      "end",
}

// Actions lists every navigation action in display order.
func Actions() []Action {
	return []Action{ActionLineUp, ActionLineDown, ActionPageUp, ActionPageDown, ActionHome, ActionEnd}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("window: unknown action %q", name)
}

// target returns the row an action scrolls to, or false when the action is a
// no-op at the current position.
func (a Action) target(st WindowState, total int) (int, bool) {
	last := total - 1
	switch a {
	case ActionLineDown:
		if st.Start >= last || st.End >= last {
			return 0, false
		}
		return st.Start + 1, true
	case ActionLineUp:
		if st.Start <= 0 {
			return 0, false
		}
		return st.Start - 1, true
	case ActionPageDown:
		if st.End >= last {
			return 0, false
		}
		return min(st.Start+st.Count, last), true
	case ActionPageUp:
		if st.Start <= 0 {
			return 0, false
		}
		return max(st.Start-st.Count, 0), true
	case ActionHome:
		if st.Start == 0 {
			return 0, false
		}
		return 0, true
	case ActionEnd:
		if st.Start == last || st.End == last {
			return 0, false
		}
		return last, true
	default:
		return 0, false
	}
}
