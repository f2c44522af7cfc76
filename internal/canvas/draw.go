package canvas

import (
	"math"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Text alignment names, matching the p5 constants.
const (
	alignLeft     = "left"
	alignRight    = "right"
	alignCenter   = "center"
	alignTop      = "top"
	alignBottom   = "bottom"
	alignBaseline = "alphabetic"
)

const (
	solidRune = '█'
	pointRune = '•'
)

// cellLimit bounds cell coordinates, keeping far-off shapes cheap to clip
// and int conversions well defined.
const cellLimit = 1 << 24

// posX maps a logical x (before translation) to a fractional column.
func (c *Canvas) posX(x float64) float64 {
	if c.width <= 0 {
		return 0
	}
	return (x + c.style.tx) * float64(c.screen.Width()) / c.width
}

// posY maps a logical y (before translation) to a fractional row.
func (c *Canvas) posY(y float64) float64 {
	if c.height <= 0 {
		return 0
	}
	return (y + c.style.ty) * float64(c.screen.Height()) / c.height
}

// toCell floors a fractional cell coordinate into [-cellLimit, cellLimit].
func toCell(v float64) int {
	switch {
	case math.IsNaN(v), v < -cellLimit:
		return -cellLimit
	case v > cellLimit:
		return cellLimit
	}
	return int(math.Floor(v))
}

// cellX maps a logical x (before translation) to a column.
func (c *Canvas) cellX(x float64) int { return toCell(c.posX(x)) }

// cellY maps a logical y (before translation) to a row.
func (c *Canvas) cellY(y float64) int { return toCell(c.posY(y)) }

// finite reports whether every value is a finite number. p5 draws nothing
// for shapes with NaN or infinite coordinates.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// cellCenter maps a column and row back to the logical point at its centre,
// in the sketch's translated space.
func (c *Canvas) cellCenter(col, row int) (float64, float64) {
	x := (float64(col)+0.5)*c.width/float64(c.screen.Width()) - c.style.tx
	y := (float64(row)+0.5)*c.height/float64(c.screen.Height()) - c.style.ty
	return x, y
}

func (c *Canvas) background(rgb core.RGB) {
	c.screen.Paint(core.Nearest(rgb))
}

func (c *Canvas) solid(col, row int, color core.Color) {
	c.screen.SetCell(col, row, solidCell(color))
}

func solidCell(color core.Color) core.Cell {
	return core.Cell{Rune: solidRune, Fg: color, Bg: color}
}

func (c *Canvas) rect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	x0, y0 := c.cellX(x), c.cellY(y)
	x1, y1 := c.cellX(x+w), c.cellY(y+h)
	// Anything with area covers at least one cell
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	area := core.NewRect(x0, y0, x1-x0, y1-y0)
	if !area.Intersects(c.screen.Bounds()) {
		return
	}
	visible := area.Intersection(c.screen.Bounds())

	switch {
	case c.style.hasFill:
		c.screen.DrawRect(visible, solidCell(c.style.fill))
	case c.style.hasStroke:
		edge := solidCell(c.style.stroke)
		c.screen.DrawHLine(visible.X, area.Y, visible.W, edge)
		c.screen.DrawHLine(visible.X, area.Bottom()-1, visible.W, edge)
		c.screen.DrawVLine(area.X, visible.Y, visible.H, edge)
		c.screen.DrawVLine(area.Right()-1, visible.Y, visible.H, edge)
	}
}

func (c *Canvas) ellipse(cx, cy, w, h float64) {
	if !finite(cx, cy, w, h) {
		return
	}
	rx, ry := math.Abs(w)/2, math.Abs(h)/2
	if !c.style.hasFill && !c.style.hasStroke {
		return
	}
	color := c.style.fill
	if !c.style.hasFill {
		color = c.style.stroke
	}

	x0, y0 := c.cellX(cx-rx), c.cellY(cy-ry)
	x1, y1 := c.cellX(cx+rx), c.cellY(cy+ry)
	box := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)
	if !box.Intersects(c.screen.Bounds()) {
		return
	}
	// Only cells on screen are tested, however large the ellipse is
	box = box.Intersection(c.screen.Bounds())
	covered := false
	for row := box.Y; row < box.Bottom(); row++ {
		for col := box.X; col < box.Right(); col++ {
			px, py := c.cellCenter(col, row)
			d := ellipseDistance(px-cx, py-cy, rx, ry)
			if d > 1 {
				continue
			}
			if !c.style.hasFill && d < outlineInner(rx, ry, c.width/float64(max(c.screen.Width(), 1))) {
				continue
			}
			c.solid(col, row, color)
			covered = true
		}
	}
	// Shapes smaller than a cell still show up
	if !covered && (rx > 0 || ry > 0) && x1-x0 <= 1 && y1-y0 <= 1 {
		c.solid(c.cellX(cx), c.cellY(cy), color)
	}
}

func ellipseDistance(dx, dy, rx, ry float64) float64 {
	if rx == 0 || ry == 0 {
		return math.Inf(1)
	}
	return (dx*dx)/(rx*rx) + (dy*dy)/(ry*ry)
}

// outlineInner is the normalized radius inside which an unfilled ellipse is
// left empty, leaving a ring about one cell wide.
func outlineInner(rx, ry, cell float64) float64 {
	r := math.Min(rx, ry)
	if r <= cell {
		return 0
	}
	inner := (r - cell) / r
	return inner * inner
}

func (c *Canvas) point(x, y float64) {
	if !c.style.hasStroke || !finite(x, y) {
		return
	}
	c.screen.SetCell(c.cellX(x), c.cellY(y), core.Cell{Rune: pointRune, Fg: c.style.stroke})
}

// line rasterizes with Bresenham's algorithm over cells, after clipping the
// segment to the screen so the walk never leaves it by more than a cell.
func (c *Canvas) line(x1, y1, x2, y2 float64) {
	if !c.style.hasStroke || !finite(x1, y1, x2, y2) {
		return
	}
	fx1, fy1 := c.posX(x1), c.posY(y1)
	fx2, fy2 := c.posX(x2), c.posY(y2)
	w, h := float64(c.screen.Width()), float64(c.screen.Height())
	fx1, fy1, fx2, fy2, ok := clipSegment(fx1, fy1, fx2, fy2, -1, -1, w+1, h+1)
	if !ok {
		return
	}
	ax, ay := toCell(fx1), toCell(fy1)
	bx, by := toCell(fx2), toCell(fy2)

	dx := core.Abs(bx - ax)
	dy := -core.Abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		c.solid(ax, ay, c.style.stroke)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// clipSegment clips the segment (x0,y0)-(x1,y1) to the box with the
// Liang-Barsky algorithm. ok is false when nothing of it lies in the box.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	cx0, cy0, cx1, cy1 = x0, y0, x1, y1
	if t0 > 0 {
		cx0, cy0 = x0+t0*dx, y0+t0*dy
	}
	if t1 < 1 {
		cx1, cy1 = x0+t1*dx, y0+t1*dy
	}
	return cx0, cy0, cx1, cy1, true
}

func (c *Canvas) text(s string, x, y float64) {
	if !c.style.hasFill {
		return
	}
	lines := splitLines(s)

	row := c.cellY(y)
	switch c.style.alignV {
	case alignBaseline, alignBottom:
		// y is the bottom of the last line
		row = c.cellY(y-c.style.textSize*0.5) - (len(lines) - 1)
	case alignCenter:
		row -= len(lines) / 2
	}

	for i, line := range lines {
		col := c.cellX(x)
		n := len([]rune(line))
		switch c.style.alignH {
		case alignCenter:
			col -= n / 2
		case alignRight:
			col -= n
		}
		c.screen.DrawTextColor(col, row+i, line, c.style.fill)
	}
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// wrap breaks a line into chunks of at most width runes.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return []string{line}
	}
	var out []string
	for len(runes) > width {
		out = append(out, string(runes[:width]))
		runes = runes[width:]
	}
	return append(out, string(runes))
}
