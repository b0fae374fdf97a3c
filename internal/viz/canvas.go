package viz

import (
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in sub-pixels; a canvas of
// Width x Height cells has (2*Width) x (4*Height) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// cell resolves a dot to its cell and bit; ok is false off-canvas.
func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a disc of radius r dots.
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world metres onto canvas dots, keeping the aspect ratio
// of a terminal cell (two dots wide, four high, roughly square).
type Viewport struct {
	Center dynamo.Vec2
	// HalfExtent is the world distance from the centre to the nearest
	// canvas edge.
	HalfExtent float64
}

// FitViewport frames every finite position with a margin.
func FitViewport(positions []dynamo.Vec2) Viewport {
	extent := 0.0
	for _, p := range positions {
		if p.IsFinite() {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	if extent == 0 {
		extent = 1
	}
	return Viewport{HalfExtent: extent * 1.15}
}

func (v Viewport) Project(c *Canvas, p dynamo.Vec2) (int, int, bool) {
	if !p.IsFinite() || v.HalfExtent <= 0 {
		return 0, 0, false
	}
	w, h := float64(c.DotsWide()), float64(c.DotsHigh())
	scale := math.Min(w, h) / 2 / v.HalfExtent
	x := w/2 + (p.X-v.Center.X)*scale
	y := h/2 - (p.Y-v.Center.Y)*scale
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	return int(x), int(y), true
}

// Zoom scales the visible extent; factors below 1 zoom in.
func (v Viewport) Zoom(factor float64) Viewport {
	v.HalfExtent *= factor
	return v
}

// DotsPerMetre is the current projection scale.
func (v Viewport) DotsPerMetre(c *Canvas) float64 {
	return math.Min(float64(c.DotsWide()), float64(c.DotsHigh())) / 2 / v.HalfExtent
}
