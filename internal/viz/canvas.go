package viz

import (
	"strings"

	"github.com/san-kum/tenseg/internal/engine"
)

// Canvas is a rune grid the structure is projected onto, side view:
// screen x follows world x, screen y follows world height.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(width, height int) *Canvas {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
	}
	c := &Canvas{Width: width, Height: height, grid: grid}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.grid {
		for x := range c.grid[y] {
			c.grid[y][x] = ' '
		}
	}
}

func (c *Canvas) Set(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.grid[y][x] = r
	}
}

func (c *Canvas) Line(x1, y1, x2, y2 int, r rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x1, y1, r)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// DrawStructure projects joints and intervals onto the canvas, fitting
// the structure's bounding box to the grid. Pushes draw over pulls.
func (c *Canvas) DrawStructure(joints []engine.JointView, intervals []engine.IntervalView) {
	c.Clear()
	if len(joints) == 0 {
		return
	}

	minX, maxX := joints[0].Location.X, joints[0].Location.X
	minY, maxY := joints[0].Location.Y, joints[0].Location.Y
	for _, j := range joints {
		if j.Location.X < minX {
			minX = j.Location.X
		}
		if j.Location.X > maxX {
			maxX = j.Location.X
		}
		if j.Location.Y < minY {
			minY = j.Location.Y
		}
		if j.Location.Y > maxY {
			maxY = j.Location.Y
		}
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	project := func(j engine.JointView) (int, int) {
		px := int((j.Location.X - minX) / spanX * float64(c.Width-3))
		py := c.Height - 2 - int((j.Location.Y-minY)/spanY*float64(c.Height-3))
		return px + 1, py
	}

	for _, iv := range intervals {
		if iv.Push {
			continue
		}
		x1, y1 := project(joints[iv.Alpha])
		x2, y2 := project(joints[iv.Omega])
		c.Line(x1, y1, x2, y2, '.')
	}
	for _, iv := range intervals {
		if !iv.Push {
			continue
		}
		x1, y1 := project(joints[iv.Alpha])
		x2, y2 := project(joints[iv.Omega])
		c.Line(x1, y1, x2, y2, '=')
	}
	for _, j := range joints {
		x, y := project(j)
		c.Set(x, y, 'o')
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
