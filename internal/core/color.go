package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. Tile types index into TilePalette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// TilePalette assigns one distinct color per tile type.
var TilePalette = []Color{
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorOrange,
	ColorWhite,
	ColorRed,
}

// TileColor returns the palette color for a tile type, or ColorGray when the
// type is outside the palette.
func TileColor(t int) Color {
	if t < 0 || t >= len(TilePalette) {
		return ColorGray
	}
	return TilePalette[t]
}
