package canvas

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// cssColors covers the CSS names sketches use most. Unknown names fall back
// to grey.
var cssColors = map[string]core.RGB{
	"black":   {R: 0, G: 0, B: 0},
	"white":   {R: 255, G: 255, B: 255},
	"red":     {R: 255, G: 0, B: 0},
	"green":   {R: 0, G: 128, B: 0},
	"lime":    {R: 0, G: 255, B: 0},
	"blue":    {R: 0, G: 0, B: 255},
	"yellow":  {R: 255, G: 255, B: 0},
	"cyan":    {R: 0, G: 255, B: 255},
	"aqua":    {R: 0, G: 255, B: 255},
	"magenta": {R: 255, G: 0, B: 255},
	"fuchsia": {R: 255, G: 0, B: 255},
	"orange":  {R: 255, G: 165, B: 0},
	"purple":  {R: 128, G: 0, B: 128},
	"pink":    {R: 255, G: 192, B: 203},
	"gray":    {R: 128, G: 128, B: 128},
	"grey":    {R: 128, G: 128, B: 128},
	"silver":  {R: 192, G: 192, B: 192},
	"gold":    {R: 255, G: 215, B: 0},
	"brown":   {R: 165, G: 42, B: 42},
	"navy":    {R: 0, G: 0, B: 128},
	"teal":    {R: 0, G: 128, B: 128},
	"maroon":  {R: 128, G: 0, B: 0},
	"olive":   {R: 128, G: 128, B: 0},
	"skyblue": {R: 135, G: 206, B: 235},
	"crimson": {R: 220, G: 20, B: 60},
	"violet":  {R: 238, G: 130, B: 238},
	"coral":   {R: 255, G: 127, B: 80},
	"salmon":  {R: 250, G: 128, B: 114},
	"tomato":  {R: 255, G: 99, B: 71},
	"khaki":   {R: 240, G: 230, B: 140},
	"indigo":  {R: 75, G: 0, B: 130},
	"darkred": {R: 139, G: 0, B: 0},
}

var fallbackRGB = core.RGB{R: 128, G: 128, B: 128}

// parseColor reads p5 colour arguments: grey, grey+alpha, r,g,b(,a), a CSS
// string, an array of levels, or an object made by color().
func parseColor(args []goja.Value) core.RGB {
	switch len(args) {
	case 0:
		return fallbackRGB
	case 1, 2:
		return parseSingle(args[0])
	default:
		return core.RGB{
			R: level(args[0].ToFloat()),
			G: level(args[1].ToFloat()),
			B: level(args[2].ToFloat()),
		}
	}
}

func parseSingle(v goja.Value) core.RGB {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return fallbackRGB
	}
	switch exported := v.Export().(type) {
	case string:
		return parseCSS(exported)
	case int64:
		g := level(float64(exported))
		return core.RGB{R: g, G: g, B: g}
	case float64:
		g := level(exported)
		return core.RGB{R: g, G: g, B: g}
	case []any:
		return fromLevels(exported)
	case map[string]any:
		if levels, ok := exported["levels"].([]any); ok {
			return fromLevels(levels)
		}
	}
	return fallbackRGB
}

func fromLevels(levels []any) core.RGB {
	vals := make([]float64, 0, 3)
	for _, l := range levels {
		switch n := l.(type) {
		case int:
			vals = append(vals, float64(n))
		case int64:
			vals = append(vals, float64(n))
		case float64:
			vals = append(vals, n)
		}
	}
	switch {
	case len(vals) >= 3:
		return core.RGB{R: level(vals[0]), G: level(vals[1]), B: level(vals[2])}
	case len(vals) >= 1:
		g := level(vals[0])
		return core.RGB{R: g, G: g, B: g}
	default:
		return fallbackRGB
	}
}

// parseCSS understands #rgb, #rrggbb, rgb()/rgba() and the names above.
func parseCSS(s string) core.RGB {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 || len(hex) == 4 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) >= 6 {
			if n, err := strconv.ParseUint(hex[:6], 16, 32); err == nil {
				return core.RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
			}
		}
		return fallbackRGB
	}
	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[open+1:len(s)-1], ",")
		if len(parts) >= 3 {
			var rgb [3]uint8
			for i := range rgb {
				f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
				if err != nil {
					return fallbackRGB
				}
				rgb[i] = level(f)
			}
			return core.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
		}
		return fallbackRGB
	}
	if rgb, ok := cssColors[s]; ok {
		return rgb
	}
	return fallbackRGB
}

func level(f float64) uint8 {
	switch {
	case f != f || f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f + 0.5)
	}
}

// newColor builds the object color() returns, shaped like p5.Color.
func (c *Canvas) newColor(args []goja.Value) goja.Value {
	rgb := parseColor(args)
	alpha := 255.0
	switch len(args) {
	case 2:
		alpha = args[1].ToFloat()
	case 4:
		alpha = args[3].ToFloat()
	}
	obj := c.vm.NewObject()
	_ = obj.Set("levels", []any{int(rgb.R), int(rgb.G), int(rgb.B), int(level(alpha))})
	_ = obj.Set("toString", func(goja.FunctionCall) goja.Value {
		return c.vm.ToValue("rgba(" + strconv.Itoa(int(rgb.R)) + "," + strconv.Itoa(int(rgb.G)) + "," + strconv.Itoa(int(rgb.B)) + "," + strconv.FormatFloat(float64(level(alpha))/255, 'f', -1, 64) + ")")
	})
	return obj
}
