package core

// Color represents a colour slot of a screen cell.
// The palette is deliberately small so it renders on any 16-colour terminal;
// sketch colours given as RGB are snapped to the nearest entry.
type Color uint8

// Palette entries. ColorDefault leaves the terminal's own colour untouched.
const (
	ColorDefault Color = iota
	ColorBlack
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
	ColorDarkRed
	ColorNavy
)

// RGB is a 24-bit colour as produced by sketch code.
type RGB struct {
	R, G, B uint8
}

// paletteRGB holds the reference value each palette entry is matched against.
var paletteRGB = []struct {
	c   Color
	rgb RGB
}{
	{ColorBlack, RGB{0, 0, 0}},
	{ColorRed, RGB{205, 0, 0}},
	{ColorGreen, RGB{0, 205, 0}},
	{ColorYellow, RGB{205, 205, 0}},
	{ColorBlue, RGB{0, 0, 238}},
	{ColorMagenta, RGB{205, 0, 205}},
	{ColorCyan, RGB{0, 205, 205}},
	{ColorWhite, RGB{229, 229, 229}},
	{ColorBrightRed, RGB{255, 85, 85}},
	{ColorBrightGreen, RGB{85, 255, 85}},
	{ColorBrightYellow, RGB{255, 255, 85}},
	{ColorBrightBlue, RGB{92, 92, 255}},
	{ColorBrightMagenta, RGB{255, 85, 255}},
	{ColorBrightCyan, RGB{85, 255, 255}},
	{ColorBrightWhite, RGB{255, 255, 255}},
	{ColorOrange, RGB{255, 135, 0}},
	{ColorGray, RGB{138, 138, 138}},
	{ColorDarkRed, RGB{50, 0, 0}},
	{ColorNavy, RGB{20, 20, 40}},
}

// Nearest returns the palette colour closest to c (squared euclidean distance).
func Nearest(c RGB) Color {
	best := ColorBlack
	bestDist := -1
	for _, p := range paletteRGB {
		dr := int(c.R) - int(p.rgb.R)
		dg := int(c.G) - int(p.rgb.G)
		db := int(c.B) - int(p.rgb.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
