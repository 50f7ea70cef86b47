package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Engine with multithreaded computation
	the rows are split into bands, each band is computed by its own goroutine
	into the shared next buffer, the bands never overlap
*/

//DefMinRowsPerWorker is the minimum number of rows given to one worker
const DefMinRowsPerWorker = 3

type ParallelEngine struct {
	workers int
}

//NewParallelEngine creates the engine, workers <= 0 means one worker per CPU
func NewParallelEngine(workers int) *ParallelEngine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelEngine{workers: workers}
}

func (pe *ParallelEngine) Name() string { return "parallel" }

//Workers returns the configured number of workers
func (pe *ParallelEngine) Workers() int { return pe.workers }

//Next starts the workers, waits for all of them and joins their changed lists in band order
func (pe *ParallelEngine) Next(g *Grid, _ Dirty) Generation {
	bands := pe.bands(g.Height)
	next := make([]bool, len(g.Cells))
	changed := make([][]int, len(bands))

	var eg errgroup.Group
	for i, b := range bands {
		i, b := i, b
		eg.Go(func() error {
			changed[i] = stepRows(g, next, b[0], b[1], nil).Changed
			return nil
		})
	}
	_ = eg.Wait() //workers never fail

	total := 0
	for _, c := range changed {
		total += len(c)
	}
	all := make([]int, 0, total)
	for _, c := range changed {
		all = append(all, c...)
	}
	return Generation{Cells: next, Changed: all}
}

//bands splits [0, height) into at most pe.workers row ranges
func (pe *ParallelEngine) bands(height int) [][2]int {
	rowsPerWorker := (height + pe.workers - 1) / pe.workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	}
	bands := make([][2]int, 0, pe.workers)
	for y1 := 0; y1 < height; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker
		if y2 > height {
			y2 = height
		}
		bands = append(bands, [2]int{y1, y2})
	}
	return bands
}
