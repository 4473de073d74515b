package longview

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Loaded rows.
	SecondaryTextColor       tcell.Color // Footers and secondary labels.
	PendingTextColor         tcell.Color // Rows that have not been delivered yet.
	ThumbColor               tcell.Color // Scrollbar thumb.
	TrackColor               tcell.Color // Scrollbar track.
}

// Styles defines the theme for applications. The default is for a black
// background with white text and a yellow footer.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	PendingTextColor:         color.Gray,
	ThumbColor:               color.White,
	TrackColor:               color.Gray,
}
