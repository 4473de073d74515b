package longview

// Semigraphics used by borders, captions, and placeholder rows.
const (
	// General Punctuation U+2000-U+206F
	SemigraphicsHorizontalEllipsis = "…" // …

	// Box Drawing U+2500-U+257F
	BoxDrawingsLightHorizontal      = "─" // ─
	BoxDrawingsHeavyHorizontal      = "━" // ━
	BoxDrawingsLightVertical        = "│" // │
	BoxDrawingsHeavyVertical        = "┃" // ┃
	BoxDrawingsLightDownAndRight    = "┌" // ┌
	BoxDrawingsHeavyDownAndRight    = "┏" // ┏
	BoxDrawingsLightDownAndLeft     = "┐" // ┐
	BoxDrawingsHeavyDownAndLeft     = "┓" // ┓
	BoxDrawingsLightUpAndRight      = "└" // └
	BoxDrawingsHeavyUpAndRight      = "┗" // ┗
	BoxDrawingsLightUpAndLeft       = "┘" // ┘
	BoxDrawingsHeavyUpAndLeft       = "┛" // ┛
	BoxDrawingsLightArcDownAndRight = "╭" // ╭
	BoxDrawingsLightArcDownAndLeft  = "╮" // ╮
	BoxDrawingsLightArcUpAndLeft    = "╯" // ╯
	BoxDrawingsLightArcUpAndRight   = "╰" // ╰

	// Block Elements U+2580-U+259F
	BlockLightShade = "░" // ░
)
