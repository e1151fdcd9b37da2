package tui

// canvas is a braille micro-pixel buffer: every terminal cell carries a 2x4
// pixel grid encoded in the Unicode braille block. A parallel color plane
// remembers which layer last painted each cell.
type canvas struct {
	w, h  int // in cells
	masks [][]uint8
	color [][]int // palette slot per cell, -1 when unpainted
}

func newCanvas(w, h int) *canvas {
	masks := make([][]uint8, h)
	color := make([][]int, h)
	for i := range masks {
		masks[i] = make([]uint8, w)
		color[i] = make([]int, w)
		for j := range color[i] {
			color[i][j] = -1
		}
	}
	return &canvas{w: w, h: h, masks: masks, color: color}
}

var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// set paints one micro-pixel at micro coords (2 wide, 4 tall per cell).
func (c *canvas) set(mx, my, slot int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.masks[cy][cx] |= brailleBits[ry][rx]
	c.color[cy][cx] = slot
}

// line draws a micro-pixel line with Bresenham.
func (c *canvas) line(x0, y0, x1, y1, slot int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0, slot)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// cell returns the rune and color slot for one terminal cell.
func (c *canvas) cell(x, y int) (rune, int) {
	mask := c.masks[y][x]
	if mask == 0 {
		return ' ', -1
	}
	return rune(0x2800 + int(mask)), c.color[y][x]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
