package universe

import "sort"

/*
	Engine which re-evaluates only the neighbourhoods of the changed cells
	a cell can change state only if something inside its 3x3 wrapped neighbourhood
	changed during the previous transition, every other cell keeps its state.
	The cost per call is proportional to the active region instead of the whole area,
	apart from the copy of the buffer.
*/

type DirtyEngine struct {
	marks      []bool
	candidates []int
}

func NewDirtyEngine() *DirtyEngine {
	return &DirtyEngine{}
}

func (de *DirtyEngine) Name() string { return "dirty" }

func (de *DirtyEngine) Next(g *Grid, d Dirty) Generation {
	if d.All {
		return Step(g)
	}
	if len(de.marks) != len(g.Cells) {
		de.marks = make([]bool, len(g.Cells))
	}

	de.candidates = de.candidates[:0]
	for _, i := range d.Cells {
		x, y := g.Coords(i)
		for dy := -1; dy <= 1; dy++ {
			ny := Wrap(y+dy, g.Height) * g.Width
			for dx := -1; dx <= 1; dx++ {
				c := ny + Wrap(x+dx, g.Width)
				if !de.marks[c] {
					de.marks[c] = true
					de.candidates = append(de.candidates, c)
				}
			}
		}
	}
	sort.Ints(de.candidates)

	next := make([]bool, len(g.Cells))
	copy(next, g.Cells)
	var changed []int
	for _, i := range de.candidates {
		de.marks[i] = false
		x, y := g.Coords(i)
		state := NextState(g.Cells[i], NeighborCount(g, x, y))
		if state != g.Cells[i] {
			next[i] = state
			changed = append(changed, i)
		}
	}
	return Generation{Cells: next, Changed: changed}
}
