package view

import (
	"bytes"

	"torlife/src/universe"
)

//frame is the front-end copy of the field
//it is rebuilt on reset and patched with the changed cells after every generation
type frame struct {
	width  int
	height int
	cells  []bool
}

func (f *frame) reset(g *universe.Grid) {
	f.width, f.height = g.Width, g.Height
	f.cells = append(f.cells[:0], g.Cells...)
}

func (f *frame) apply(changes []universe.Change) {
	for _, c := range changes {
		if c.Index >= 0 && c.Index < len(f.cells) {
			f.cells[c.Index] = c.Alive
		}
	}
}

//render writes at most maxW x maxH cells, the last line is replaced by overflow when cropped
func (f *frame) render(b *bytes.Buffer, maxW int, maxH int, live string, dead string, overflow string) {
	crop := f.width > maxW || f.height > maxH
	for y := 0; y < f.height; y++ {
		//discard the data outside the view area
		if y >= maxH {
			break
		}
		if y != 0 {
			b.WriteByte('\n')
		}
		if crop && overflow != "" && y == maxH-1 {
			b.WriteString(overflow)
			break
		}
		row := f.cells[y*f.width : (y+1)*f.width]
		for x, alive := range row {
			if x >= maxW {
				break
			}
			if alive {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
}
