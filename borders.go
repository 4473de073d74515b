package longview

import (
	"fmt"
	"strings"
)

// BorderSet defines the glyphs used when a box border is drawn.
type BorderSet struct {
	Top         string
	Bottom      string
	Left        string
	Right       string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

func BorderSetPlain() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsLightHorizontal,
		Bottom:      BoxDrawingsLightHorizontal,
		Left:        BoxDrawingsLightVertical,
		Right:       BoxDrawingsLightVertical,
		TopLeft:     BoxDrawingsLightDownAndRight,
		TopRight:    BoxDrawingsLightDownAndLeft,
		BottomLeft:  BoxDrawingsLightUpAndRight,
		BottomRight: BoxDrawingsLightUpAndLeft,
	}
}

func BorderSetRound() BorderSet {
	s := BorderSetPlain()
	s.TopLeft = BoxDrawingsLightArcDownAndRight
	s.TopRight = BoxDrawingsLightArcDownAndLeft
	s.BottomLeft = BoxDrawingsLightArcUpAndRight
	s.BottomRight = BoxDrawingsLightArcUpAndLeft
	return s
}

func BorderSetThick() BorderSet {
	return BorderSet{
		Top:         BoxDrawingsHeavyHorizontal,
		Bottom:      BoxDrawingsHeavyHorizontal,
		Left:        BoxDrawingsHeavyVertical,
		Right:       BoxDrawingsHeavyVertical,
		TopLeft:     BoxDrawingsHeavyDownAndRight,
		TopRight:    BoxDrawingsHeavyDownAndLeft,
		BottomLeft:  BoxDrawingsHeavyUpAndRight,
		BottomRight: BoxDrawingsHeavyUpAndLeft,
	}
}

// ParseBorders returns the borders and border set for a style name: "none",
// "plain", "round", or "thick".
func ParseBorders(name string) (Borders, BorderSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return BordersNone, BorderSetPlain(), nil
	case "", "plain":
		return BordersAll, BorderSetPlain(), nil
	case "round":
		return BordersAll, BorderSetRound(), nil
	case "thick":
		return BordersAll, BorderSetThick(), nil
	default:
		return BordersNone, BorderSet{}, fmt.Errorf("unknown border style %q", name)
	}
}

type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll  Borders = BordersTop | BordersBottom | BordersLeft | BordersRight
)

func (b Borders) Has(flag Borders) bool {
	return b&flag != 0
}
