package universe

import (
	"fmt"
	"math"
	"math/rand/v2"
)

//Grid is the toroidal field where cells live
//Cells are stored in row-major order, index = y*Width + x
type Grid struct {
	Width  int
	Height int
	Cells  []bool
}

//NewGrid allocates the grid with all cells dead
func NewGrid(width int, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return &Grid{Width: width, Height: height, Cells: make([]bool, width*height)}, nil
}

//Index returns the linear index of the cell x, y
func (g *Grid) Index(x int, y int) int {
	return y*g.Width + x
}

//Coords is the inverse of Index
func (g *Grid) Coords(index int) (x int, y int) {
	return index % g.Width, index / g.Width
}

//Wrap maps any coordinate into [0, size), negative coordinates included
func Wrap(coord int, size int) int {
	return ((coord % size) + size) % size
}

//Contains reports whether x, y lies inside the grid
func (g *Grid) Contains(x int, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

//Alive returns the cell state, cells outside the grid are dead
func (g *Grid) Alive(x int, y int) bool {
	if !g.Contains(x, y) {
		return false
	}
	return g.Cells[g.Index(x, y)]
}

//At returns the cell state with both coordinates wrapped around the torus
func (g *Grid) At(x int, y int) bool {
	return g.Cells[g.Index(Wrap(x, g.Width), Wrap(y, g.Height))]
}

//Set places the cell state at x, y
func (g *Grid) Set(x int, y int, alive bool) error {
	if !g.Contains(x, y) {
		return g.outOfRange(x, y)
	}
	g.Cells[g.Index(x, y)] = alive
	return nil
}

//Toggle inverses the cell state at x, y and returns the new state
func (g *Grid) Toggle(x int, y int) (bool, error) {
	if !g.Contains(x, y) {
		return false, g.outOfRange(x, y)
	}
	i := g.Index(x, y)
	g.Cells[i] = !g.Cells[i]
	return g.Cells[i], nil
}

//Settle makes every listed [x, y] cell alive
//nothing is changed when any of the coordinates is outside the grid
func (g *Grid) Settle(coords [][2]int) error {
	for _, c := range coords {
		if !g.Contains(c[0], c[1]) {
			return g.outOfRange(c[0], c[1])
		}
	}
	for _, c := range coords {
		g.Cells[g.Index(c[0], c[1])] = true
	}
	return nil
}

//Randomize makes each cell alive with the probability density, one draw per cell
func (g *Grid) Randomize(density float64, rng *rand.Rand) error {
	if math.IsNaN(density) || density < 0 || density > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	for i := range g.Cells {
		g.Cells[i] = rng.Float64() < density
	}
	return nil
}

//Clear kills all cells
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = false
	}
}

//Clone returns the deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]bool, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	n := 0
	for _, alive := range g.Cells {
		if alive {
			n++
		}
	}
	return n
}

func (g *Grid) outOfRange(x int, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, x, y, g.Width, g.Height)
}
