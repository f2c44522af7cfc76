package canvas

import (
	"math"

	"github.com/dop251/goja"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// bind installs the p5 subset on p.
func (c *Canvas) bind(p *goja.Object) error {
	constants := map[string]any{
		"PI":          math.Pi,
		"TWO_PI":      2 * math.Pi,
		"HALF_PI":     math.Pi / 2,
		"QUARTER_PI":  math.Pi / 4,
		"LEFT":        alignLeft,
		"RIGHT":       alignRight,
		"CENTER":      alignCenter,
		"TOP":         alignTop,
		"BOTTOM":      alignBottom,
		"BASELINE":    alignBaseline,
		"UP_ARROW":    KeyUpArrow,
		"DOWN_ARROW":  KeyDownArrow,
		"LEFT_ARROW":  KeyLeftArrow,
		"RIGHT_ARROW": KeyRightArrow,
		"ENTER":       KeyEnter,
		"RETURN":      KeyEnter,
		"ESCAPE":      KeyEscape,
		"BACKSPACE":   KeyBackspace,
		"TAB":         KeyTab,
		"SHIFT":       KeyShift,
		"DELETE":      KeyDelete,
	}
	for name, v := range constants {
		if err := p.Set(name, v); err != nil {
			return err
		}
	}

	functions := map[string]func(goja.FunctionCall) goja.Value{
		// Surface and loop
		"createCanvas": c.jsCreateCanvas,
		"resizeCanvas": c.jsCreateCanvas,
		"frameRate":    c.jsFrameRate,
		"noLoop":       func(goja.FunctionCall) goja.Value { c.looping = false; return goja.Undefined() },
		"loop":         func(goja.FunctionCall) goja.Value { c.looping = true; return goja.Undefined() },
		"isLooping":    func(goja.FunctionCall) goja.Value { return c.vm.ToValue(c.looping) },
		"millis":       c.jsMillis,

		// Style
		"background": func(call goja.FunctionCall) goja.Value {
			c.background(parseColor(call.Arguments))
			return goja.Undefined()
		},
		"clear": func(goja.FunctionCall) goja.Value {
			c.screen.Clear()
			return goja.Undefined()
		},
		"fill": func(call goja.FunctionCall) goja.Value {
			c.style.fill, c.style.hasFill = core.Nearest(parseColor(call.Arguments)), true
			return goja.Undefined()
		},
		"noFill": func(goja.FunctionCall) goja.Value {
			c.style.hasFill = false
			return goja.Undefined()
		},
		"stroke": func(call goja.FunctionCall) goja.Value {
			c.style.stroke, c.style.hasStroke = core.Nearest(parseColor(call.Arguments)), true
			return goja.Undefined()
		},
		"noStroke": func(goja.FunctionCall) goja.Value {
			c.style.hasStroke = false
			return goja.Undefined()
		},
		"strokeWeight": noop,
		"rectMode":     noop,
		"ellipseMode":  noop,
		"textFont":     noop,
		"textStyle":    noop,
		"textSize": func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return c.vm.ToValue(c.style.textSize)
			}
			c.style.textSize = call.Argument(0).ToFloat()
			return goja.Undefined()
		},
		"textAlign": func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				c.style.alignH = call.Argument(0).String()
			}
			if len(call.Arguments) > 1 {
				c.style.alignV = call.Argument(1).String()
			}
			return goja.Undefined()
		},
		"color": func(call goja.FunctionCall) goja.Value {
			return c.newColor(call.Arguments)
		},
		"push": func(goja.FunctionCall) goja.Value {
			c.stack = append(c.stack, c.style)
			return goja.Undefined()
		},
		"pop": func(goja.FunctionCall) goja.Value {
			if n := len(c.stack); n > 0 {
				c.style = c.stack[n-1]
				c.stack = c.stack[:n-1]
			}
			return goja.Undefined()
		},
		"translate": func(call goja.FunctionCall) goja.Value {
			c.style.tx += arg(call, 0, 0)
			c.style.ty += arg(call, 1, 0)
			return goja.Undefined()
		},

		// Shapes
		"rect": func(call goja.FunctionCall) goja.Value {
			w := arg(call, 2, 0)
			c.rect(arg(call, 0, 0), arg(call, 1, 0), w, arg(call, 3, w))
			return goja.Undefined()
		},
		"square": func(call goja.FunctionCall) goja.Value {
			s := arg(call, 2, 0)
			c.rect(arg(call, 0, 0), arg(call, 1, 0), s, s)
			return goja.Undefined()
		},
		"ellipse": func(call goja.FunctionCall) goja.Value {
			w := arg(call, 2, 0)
			c.ellipse(arg(call, 0, 0), arg(call, 1, 0), w, arg(call, 3, w))
			return goja.Undefined()
		},
		"circle": func(call goja.FunctionCall) goja.Value {
			d := arg(call, 2, 0)
			c.ellipse(arg(call, 0, 0), arg(call, 1, 0), d, d)
			return goja.Undefined()
		},
		"point": func(call goja.FunctionCall) goja.Value {
			c.point(arg(call, 0, 0), arg(call, 1, 0))
			return goja.Undefined()
		},
		"line": func(call goja.FunctionCall) goja.Value {
			c.line(arg(call, 0, 0), arg(call, 1, 0), arg(call, 2, 0), arg(call, 3, 0))
			return goja.Undefined()
		},
		"text": func(call goja.FunctionCall) goja.Value {
			c.text(call.Argument(0).String(), arg(call, 1, 0), arg(call, 2, 0))
			return goja.Undefined()
		},

		// Input
		"keyIsDown": func(call goja.FunctionCall) goja.Value {
			return c.vm.ToValue(c.keyHeld(int(arg(call, 0, -1)), c.now()))
		},

		// Math
		"random": c.jsRandom,
		"constrain": func(call goja.FunctionCall) goja.Value {
			return c.num(core.ClampF(arg(call, 0, 0), arg(call, 1, 0), arg(call, 2, 0)))
		},
		"dist": c.jsDist,
		"map":  c.jsMap,
		"lerp": func(call goja.FunctionCall) goja.Value {
			return c.num(core.Lerp(arg(call, 0, 0), arg(call, 1, 0), arg(call, 2, 0)))
		},
		"floor":   c.unary(math.Floor),
		"ceil":    c.unary(math.Ceil),
		"round":   c.unary(math.Round),
		"abs":     c.unary(math.Abs),
		"sqrt":    c.unary(math.Sqrt),
		"sq":      c.unary(func(x float64) float64 { return x * x }),
		"sin":     c.unary(math.Sin),
		"cos":     c.unary(math.Cos),
		"tan":     c.unary(math.Tan),
		"radians": c.unary(func(d float64) float64 { return d * math.Pi / 180 }),
		"degrees": c.unary(func(r float64) float64 { return r * 180 / math.Pi }),
		"atan2":   func(call goja.FunctionCall) goja.Value { return c.num(math.Atan2(arg(call, 0, 0), arg(call, 1, 0))) },
		"pow":     func(call goja.FunctionCall) goja.Value { return c.num(math.Pow(arg(call, 0, 0), arg(call, 1, 0))) },
		"min":     c.extremum(math.Min),
		"max":     c.extremum(math.Max),
	}
	for name, fn := range functions {
		if err := p.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func noop(goja.FunctionCall) goja.Value { return goja.Undefined() }

// arg returns argument i as a number, or def when it is missing.
func arg(call goja.FunctionCall, i int, def float64) float64 {
	v := call.Argument(i)
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	return v.ToFloat()
}

func (c *Canvas) num(f float64) goja.Value {
	return c.vm.ToValue(f)
}

func (c *Canvas) unary(fn func(float64) float64) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		return c.num(fn(arg(call, 0, math.NaN())))
	}
}

// extremum implements min and max over numbers or a single array.
func (c *Canvas) extremum(pick func(a, b float64) float64) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		values := make([]float64, 0, len(call.Arguments))
		if len(call.Arguments) == 1 {
			if items, ok := call.Argument(0).Export().([]any); ok {
				for _, item := range items {
					values = append(values, c.vm.ToValue(item).ToFloat())
				}
			}
		}
		if len(values) == 0 {
			for _, a := range call.Arguments {
				values = append(values, a.ToFloat())
			}
		}
		if len(values) == 0 {
			return c.num(math.NaN())
		}
		out := values[0]
		for _, v := range values[1:] {
			out = pick(out, v)
		}
		return c.num(out)
	}
}

func (c *Canvas) jsCreateCanvas(call goja.FunctionCall) goja.Value {
	w := arg(call, 0, float64(c.windowWidth()))
	h := arg(call, 1, float64(c.windowHeight()))
	if w > 0 && h > 0 {
		c.width, c.height = w, h
	}
	c.publish()
	return goja.Undefined()
}

func (c *Canvas) jsFrameRate(call goja.FunctionCall) goja.Value {
	if len(call.Arguments) == 0 {
		return c.vm.ToValue(c.fps)
	}
	if fps := int(arg(call, 0, 0)); fps > 0 {
		c.fps = fps
	}
	return goja.Undefined()
}

func (c *Canvas) jsMillis(goja.FunctionCall) goja.Value {
	return c.num(float64(c.now().Sub(c.started)) / 1e6)
}

// jsRandom implements random(), random(max), random(min, max) and
// random(array).
func (c *Canvas) jsRandom(call goja.FunctionCall) goja.Value {
	switch len(call.Arguments) {
	case 0:
		return c.num(c.rng.Float64())
	case 1:
		if items, ok := call.Argument(0).Export().([]any); ok {
			if len(items) == 0 {
				return goja.Undefined()
			}
			return c.vm.ToValue(items[c.rng.Intn(len(items))])
		}
		return c.num(c.rng.Float64() * arg(call, 0, 1))
	default:
		lo, hi := arg(call, 0, 0), arg(call, 1, 1)
		return c.num(lo + c.rng.Float64()*(hi-lo))
	}
}

func (c *Canvas) jsDist(call goja.FunctionCall) goja.Value {
	dx := arg(call, 2, 0) - arg(call, 0, 0)
	dy := arg(call, 3, 0) - arg(call, 1, 0)
	return c.num(math.Hypot(dx, dy))
}

// jsMap implements map(value, start1, stop1, start2, stop2, withinBounds).
func (c *Canvas) jsMap(call goja.FunctionCall) goja.Value {
	v := core.MapRange(arg(call, 0, 0), arg(call, 1, 0), arg(call, 2, 1), arg(call, 3, 0), arg(call, 4, 1))
	if call.Argument(5).ToBoolean() {
		lo, hi := arg(call, 3, 0), arg(call, 4, 1)
		if lo > hi {
			lo, hi = hi, lo
		}
		v = core.ClampF(v, lo, hi)
	}
	return c.num(v)
}
