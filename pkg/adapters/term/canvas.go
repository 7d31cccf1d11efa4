package term

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/muesli/termenv"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 40

	lit = '█'
)

type cell struct {
	on    bool
	color domain.Color
}

// Canvas is a host.Surface backed by a grid of terminal cells.
// The logical square [-1,1]x[-1,1] spans the whole grid with y pointing up.
type Canvas struct {
	mu     sync.Mutex
	w, h   int
	cells  []cell
	angle  float64
	scopes []float64
}

// NewCanvas creates a blank grid of w columns and h rows.
func NewCanvas(w, h int) *Canvas {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return &Canvas{w: w, h: h, cells: make([]cell, w*h)}
}

// Size returns the grid dimensions.
func (c *Canvas) Size() (w, h int) { return c.w, c.h }

func (c *Canvas) rotate(x, y float64) (float64, float64) {
	if c.angle == 0 {
		return x, y
	}
	sin, cos := math.Sincos(c.angle)
	return x*cos - y*sin, x*sin + y*cos
}

// toGrid maps a logical point to column/row space (not rounded).
func (c *Canvas) toGrid(x, y float64) (float64, float64) {
	return (x + 1) / 2 * float64(c.w-1), (1 - y) / 2 * float64(c.h-1)
}

func (c *Canvas) set(col, row int, color domain.Color) {
	if col < 0 || col >= c.w || row < 0 || row >= c.h {
		return
	}
	c.cells[row*c.w+col] = cell{on: color != domain.Black, color: color}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c *Canvas) Plot(x, y float64, color domain.Color) {
	if !finite(x, y) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	gx, gy := c.toGrid(c.rotate(x, y))
	c.set(int(math.Round(gx)), int(math.Round(gy)), color.Clamp())
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, color domain.Color) {
	if !finite(x1, y1, x2, y2) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	x1, y1 = c.rotate(x1, y1)
	x2, y2 = c.rotate(x2, y2)
	x1, y1, x2, y2, ok := clip(x1, y1, x2, y2)
	if !ok {
		return
	}

	gx1, gy1 := c.toGrid(x1, y1)
	gx2, gy2 := c.toGrid(x2, y2)
	c.bresenham(int(math.Round(gx1)), int(math.Round(gy1)), int(math.Round(gx2)), int(math.Round(gy2)), color.Clamp())
}

func (c *Canvas) bresenham(x0, y0, x1, y1 int, color domain.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, color)
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

// clip trims a segment to the logical square (Liang-Barsky).
func clip(x1, y1, x2, y2 float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1 + 1},
		{dx, 1 - x1},
		{-dy, y1 + 1},
		{dy, 1 - y1},
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
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// FillRect fills the logical rectangle with corner (x, y) and extent (w, h).
// Negative extents grow towards the opposite side.
func (c *Canvas) FillRect(x, y, w, h float64, color domain.Color) {
	if !finite(x, y, w, h) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	minX, maxX := math.Min(x, x+w), math.Max(x, x+w)
	minY, maxY := math.Min(y, y+h), math.Max(y, y+h)
	color = color.Clamp()
	sin, cos := math.Sincos(-c.angle)

	for row := range c.h {
		for col := range c.w {
			// Cell center back in logical space, undoing the current rotation.
			lx := float64(col)/float64(c.w-1)*2 - 1
			ly := 1 - float64(row)/float64(c.h-1)*2
			ux, uy := lx*cos-ly*sin, lx*sin+ly*cos
			if ux >= minX && ux <= maxX && uy >= minY && uy <= maxY {
				c.set(col, row, color)
			}
		}
	}
}

// Rotate adds angle (radians) to the rotation of the current scope.
func (c *Canvas) Rotate(angle float64) {
	if !finite(angle) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.angle = math.Mod(c.angle+angle, 2*math.Pi)
}

func (c *Canvas) Push() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = append(c.scopes, c.angle)
}

// Pop restores the rotation saved by the matching Push. Extra Pops are ignored.
func (c *Canvas) Pop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.scopes); n > 0 {
		c.angle = c.scopes[n-1]
		c.scopes = c.scopes[:n-1]
	}
}

func (c *Canvas) Clear(color domain.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	color = color.Clamp()
	for i := range c.cells {
		c.cells[i] = cell{on: color != domain.Black, color: color}
	}
}

// Text returns the grid as plain rows, lit cells drawn as a block.
func (c *Canvas) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	for row := range c.h {
		for col := range c.w {
			if c.cells[row*c.w+col].on {
				b.WriteRune(lit)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the grid to out from the top-left corner, coloring each cell
// with the best color profile out supports.
func (c *Canvas) Render(out *termenv.Output) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	out.MoveCursor(1, 1)
	var b strings.Builder
	for row := range c.h {
		for col := range c.w {
			cl := c.cells[row*c.w+col]
			if !cl.on {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(out.String(string(lit)).Foreground(out.Color(hex(cl.color))).String())
		}
		b.WriteString("\r\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func hex(c domain.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int {
	return int(math.Round(v * 255))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
