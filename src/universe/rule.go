package universe

//Generation is the result of one rule application
type Generation struct {
	//Cells is the freshly allocated next buffer
	Cells []bool
	//Changed lists indices where the next state differs from the prior one, ascending
	Changed []int
}

//NeighborCount counts live cells among the 8 wrapped neighbours of x, y
//every cell has exactly 8 neighbours, edges and corners wrap to the opposite side
func NeighborCount(g *Grid, x int, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := Wrap(y+dy, g.Height) * g.Width
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Cells[ny+Wrap(x+dx, g.Width)] {
				n++
			}
		}
	}
	return n
}

//NextState applies B3/S23 to one cell
func NextState(alive bool, neighbours int) bool {
	return neighbours == 3 || (alive && neighbours == 2)
}

//Step computes the next generation of g into a new buffer
//g itself is never modified
func Step(g *Grid) Generation {
	return stepRows(g, make([]bool, len(g.Cells)), 0, g.Height, nil)
}

//stepRows evaluates the rows [y1, y2) of g into next and appends changed indices
func stepRows(g *Grid, next []bool, y1 int, y2 int, changed []int) Generation {
	for y := y1; y < y2; y++ {
		row := y * g.Width
		for x := 0; x < g.Width; x++ {
			i := row + x
			state := NextState(g.Cells[i], NeighborCount(g, x, y))
			next[i] = state
			if state != g.Cells[i] {
				changed = append(changed, i)
			}
		}
	}
	return Generation{Cells: next, Changed: changed}
}
