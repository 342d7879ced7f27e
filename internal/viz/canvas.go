package viz

import (
	"strings"

	"github.com/san-kum/galaxysim/internal/dynamo"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Pixel coordinates address single dots,
// so the drawable area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	marked        [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.marked = make([][]bool, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.marked[i] = make([]bool, w)
	}
	c.Clear()
}

func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Mark sets a dot and flags its cell for highlighting in Render.
func (c *Canvas) Mark(x, y int) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.marked[y/4][x/2] = true
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.marked[i][j] = false
		}
	}
}

// Project maps a world position to pixel coordinates, stretching bounds over
// the whole canvas.
func (c *Canvas) Project(p dynamo.Vec2, bounds dynamo.Bounds) (int, int) {
	fx := (p.X - bounds.Origin.X) / bounds.Size.X
	fy := (p.Y - bounds.Origin.Y) / bounds.Size.Y
	return int(fx * float64(c.PixelWidth())), int(fy * float64(c.PixelHeight()))
}

func (c *Canvas) Plot(p dynamo.Vec2, bounds dynamo.Bounds) {
	c.Set(c.Project(p, bounds))
}

// Circle draws a marked outline with the midpoint algorithm. Points that fall
// off the canvas are dropped.
func (c *Canvas) Circle(cx, cy, r int) {
	if r <= 0 {
		c.Mark(cx, cy)
		return
	}
	x, y, err := r, 0, 1-r
	for x >= y {
		c.Mark(cx+x, cy+y)
		c.Mark(cx+y, cy+x)
		c.Mark(cx-y, cy+x)
		c.Mark(cx-x, cy+y)
		c.Mark(cx-x, cy-y)
		c.Mark(cx-y, cy-x)
		c.Mark(cx+y, cy-x)
		c.Mark(cx+x, cy-y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render is String with every run of cells styled: marked cells with
// highlight, the rest with normal.
func (c *Canvas) Render(normal, highlight func(...string) string) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.marked[i][j] == c.marked[i][start] {
				continue
			}
			style := normal
			if c.marked[i][start] {
				style = highlight
			}
			b.WriteString(style(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}
