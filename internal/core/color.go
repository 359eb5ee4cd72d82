package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorDarkGray
)

// Tint is a palette color plus an alpha channel. Alpha 0 hides the
// element entirely; low alpha renders with a fainter glyph.
type Tint struct {
	Color Color
	Alpha float64
}

// Opaque returns a fully visible tint of c.
func Opaque(c Color) Tint {
	return Tint{Color: c, Alpha: 1}
}

// Hidden is the fully transparent tint.
var Hidden = Tint{}

// Visible reports whether the tint draws anything.
func (t Tint) Visible() bool {
	return t.Alpha > 0
}

// Fade returns t with its alpha multiplied by a.
func (t Tint) Fade(a float64) Tint {
	t.Alpha *= a
	return t
}
