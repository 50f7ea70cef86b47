package universe

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func mustGrid(t testing.TB, w int, h int, alive ...[2]int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d): %v", w, h, err)
	}
	if err := g.Settle(alive); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	return g
}

func TestNewGridRejectsNonPositiveDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -7}, {0, 0}} {
		g, err := NewGrid(d[0], d[1])
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("NewGrid(%d, %d) err = %v, want ErrInvalidDimension", d[0], d[1], err)
		}
		if g != nil {
			t.Errorf("NewGrid(%d, %d) returned a grid", d[0], d[1])
		}
	}
}

func TestNewGridIsDead(t *testing.T) {
	g := mustGrid(t, 7, 3)
	if len(g.Cells) != 21 {
		t.Fatalf("len(Cells) = %d, want 21", len(g.Cells))
	}
	if g.LiveCells() != 0 {
		t.Fatalf("new grid has %d live cells", g.LiveCells())
	}
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	g := mustGrid(t, 7, 5)
	seen := make(map[int]bool)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			if i < 0 || i >= len(g.Cells) || seen[i] {
				t.Fatalf("Index(%d, %d) = %d is out of range or duplicated", x, y, i)
			}
			seen[i] = true
			if cx, cy := g.Coords(i); cx != x || cy != y {
				t.Fatalf("Coords(Index(%d, %d)) = (%d, %d)", x, y, cx, cy)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		coord, size, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{-1, 5, 4},
		{-5, 5, 0},
		{-6, 5, 4},
		{-13, 5, 2},
		{12, 5, 2},
		{-1, 1, 0},
		{7, 1, 0},
	}
	for _, c := range cases {
		if got := Wrap(c.coord, c.size); got != c.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", c.coord, c.size, got, c.want)
		}
	}
	for size := 1; size < 9; size++ {
		for coord := -40; coord <= 40; coord++ {
			if got := Wrap(coord, size); got < 0 || got >= size {
				t.Fatalf("Wrap(%d, %d) = %d outside [0, %d)", coord, size, got, size)
			}
		}
	}
}

func TestToggle(t *testing.T) {
	g := mustGrid(t, 4, 3)
	alive, err := g.Toggle(3, 2)
	if err != nil || !alive {
		t.Fatalf("Toggle(3, 2) = %v, %v", alive, err)
	}
	if !g.Cells[g.Index(3, 2)] {
		t.Fatalf("cell (3,2) is not alive after toggle")
	}
	if alive, _ = g.Toggle(3, 2); alive {
		t.Fatalf("second toggle left the cell alive")
	}

	for _, c := range [][2]int{{4, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		if _, err := g.Toggle(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Toggle(%d, %d) err = %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
	if g.LiveCells() != 0 {
		t.Fatalf("failed toggles changed the grid")
	}
}

func TestSettleIsAllOrNothing(t *testing.T) {
	g := mustGrid(t, 3, 3)
	err := g.Settle([][2]int{{0, 0}, {1, 1}, {3, 1}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Settle err = %v, want ErrOutOfRange", err)
	}
	if g.LiveCells() != 0 {
		t.Fatalf("Settle changed the grid on error")
	}
}

func TestAtWraps(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{0, 2})
	if !g.At(0, -1) || !g.At(3, 2) || !g.At(-3, 5) {
		t.Fatalf("wrapped lookup of (0,2) failed")
	}
	if g.Alive(0, -1) {
		t.Fatalf("Alive must not wrap")
	}
}

func TestRandomize(t *testing.T) {
	g := mustGrid(t, 20, 20)
	rng := rand.New(rand.NewPCG(1, 2))

	if err := g.Randomize(1, rng); err != nil || g.LiveCells() != 400 {
		t.Fatalf("density 1: %d live cells, err %v", g.LiveCells(), err)
	}
	if err := g.Randomize(0, rng); err != nil || g.LiveCells() != 0 {
		t.Fatalf("density 0: %d live cells, err %v", g.LiveCells(), err)
	}
	for _, d := range []float64{-0.1, 1.5} {
		if err := g.Randomize(d, rng); !errors.Is(err, ErrInvalidDensity) {
			t.Errorf("Randomize(%v) err = %v", d, err)
		}
	}

	a, b := mustGrid(t, 20, 20), mustGrid(t, 20, 20)
	_ = a.Randomize(DefDensity, rand.New(rand.NewPCG(42, 0)))
	_ = b.Randomize(DefDensity, rand.New(rand.NewPCG(42, 0)))
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("same seed gave different grids at %d", i)
		}
	}
	if n := a.LiveCells(); n == 0 || n > 200 {
		t.Fatalf("density %v gave %d of 400 live cells", DefDensity, n)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := mustGrid(t, 2, 2, [2]int{1, 1})
	c := g.Clone()
	c.Cells[0] = true
	if g.Cells[0] {
		t.Fatalf("clone shares the buffer")
	}
	g.Clear()
	if !c.Cells[3] {
		t.Fatalf("clear of the original changed the clone")
	}
}
