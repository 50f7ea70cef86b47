package universe

import (
	"math/rand/v2"
	"time"

	"torlife/src/logging"
)

//Game owns the whole state of one simulation: the grid, the generation counter,
//the engine and the scheduler
//Game is not safe for concurrent use, BaseUniverse serializes the access to it
type Game struct {
	options    Options
	grid       *Grid
	engine     Engine
	sched      *Scheduler
	rng        *rand.Rand
	log        *logging.Logger
	generation int
	liveCells  int
	stepTime   time.Duration
	dirty      Dirty
	views      []Viewer
}

//NewGame creates the game with the grid of o.Width x o.Height dead cells
//the timer drives the scheduler, tests can pass a manual one and call Tick directly
func NewGame(o Options, t Timer) (*Game, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	e, err := NewEngine(o.Engine, o.Workers)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		options: o,
		grid:    grid,
		engine:  e,
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed>>32))),
		log:     o.Logger,
		dirty:   Dirty{All: true},
	}
	g.sched = NewScheduler(t, o.Interval, g.advance)
	g.sched.onChange = g.refreshView
	return g, nil
}

//AddViewer registers the viewer and sends it the initial full frame
func (g *Game) AddViewer(v Viewer) {
	g.views = append(g.views, v)
	v.Reset(g.Status(), g.grid.Clone())
}

//Options returns the options the game was created with
func (g *Game) Options() Options {
	return g.options
}

//Status returns current status of the game
func (g *Game) Status() Status {
	return Status{
		Generation: g.generation,
		Running:    g.sched.Running(),
		LiveCells:  g.liveCells,
		Width:      g.grid.Width,
		Height:     g.grid.Height,
		Interval:   g.sched.Interval(),
		StepTime:   g.stepTime,
		Engine:     g.engine.Name(),
	}
}

//Snapshot returns the copy of the current grid
func (g *Game) Snapshot() *Grid {
	return g.grid.Clone()
}

//Generation returns the generation counter
func (g *Game) Generation() int {
	return g.generation
}

//Initialize stops the game and replaces the grid with the new empty one
//the old grid is kept when the dimensions are invalid
func (g *Game) Initialize(width int, height int) error {
	grid, err := NewGrid(width, height)
	if err != nil {
		return err
	}
	g.sched.Stop()
	g.grid = grid
	g.generation = 0
	g.liveCells = 0
	g.log.Infof("initialized %dx%d grid", width, height)
	g.reset()
	return nil
}

//Clear stops the game, kills all cells and resets the counter
func (g *Game) Clear() {
	g.sched.Stop()
	g.grid.Clear()
	g.generation = 0
	g.liveCells = 0
	g.log.Debugf("cleared")
	g.reset()
}

//Randomize seeds the grid with the given density, the counter is kept
func (g *Game) Randomize(density float64) error {
	next := g.grid.Clone()
	if err := next.Randomize(density, g.rng); err != nil {
		return err
	}
	g.grid = next
	g.liveCells = next.LiveCells()
	g.log.Debugf("randomized with density %v: %d live cells", density, g.liveCells)
	g.reset()
	return nil
}

//Settle makes the listed cells alive
func (g *Game) Settle(coords [][2]int) error {
	if err := g.grid.Settle(coords); err != nil {
		return err
	}
	g.liveCells = g.grid.LiveCells()
	g.reset()
	return nil
}

//ToggleCell inverses the cell, allowed while running
func (g *Game) ToggleCell(x int, y int) (bool, error) {
	alive, err := g.grid.Toggle(x, y)
	if err != nil {
		return false, err
	}
	if alive {
		g.liveCells++
	} else {
		g.liveCells--
	}
	i := g.grid.Index(x, y)
	g.dirty.Cells = append(g.dirty.Cells[:len(g.dirty.Cells):len(g.dirty.Cells)], i)
	st := g.Status()
	for _, v := range g.views {
		v.Edited(st, []Change{{Index: i, X: x, Y: y, Alive: alive}})
	}
	return alive, nil
}

//Start runs the game with the interval
func (g *Game) Start(interval time.Duration) {
	g.log.Infof("started at generation %d, interval %v", g.generation, interval)
	g.sched.Start(interval)
}

//Run runs the game with the last configured interval
func (g *Game) Run() {
	g.Start(g.sched.Interval())
}

//Stop stops the game, no-op when stopped
func (g *Game) Stop() {
	if g.sched.Running() {
		g.log.Infof("stopped at generation %d", g.generation)
	}
	g.sched.Stop()
}

//Toggle switches between running and stopped
func (g *Game) Toggle() {
	if g.sched.Running() {
		g.Stop()
	} else {
		g.Run()
	}
}

//SetSpeed sets the speed percent [0, 100]
func (g *Game) SetSpeed(speed float64) {
	g.sched.SetSpeed(speed)
}

//Running reports whether the scheduler is running
func (g *Game) Running() bool {
	return g.sched.Running()
}

//Tick does one generation, the same thing the timer does
func (g *Game) Tick() {
	g.sched.Tick()
}

//advance computes the next generation and publishes the changes
//returns false when the game has to stop
func (g *Game) advance() bool {
	start := time.Now()
	next := g.engine.Next(g.grid, g.dirty)
	g.stepTime = time.Since(start)
	g.dirty = Dirty{Cells: next.Changed}

	if len(next.Changed) == 0 {
		g.autoStop(StopConverged)
		return false
	}

	changes := make([]Change, len(next.Changed))
	for k, i := range next.Changed {
		x, y := g.grid.Coords(i)
		alive := next.Cells[i]
		if alive {
			g.liveCells++
		} else {
			g.liveCells--
		}
		changes[k] = Change{Index: i, X: x, Y: y, Alive: alive}
	}
	g.grid = &Grid{Width: g.grid.Width, Height: g.grid.Height, Cells: next.Cells}
	g.generation++

	st := g.Status()
	for _, v := range g.views {
		v.Advanced(st, changes)
	}

	if g.options.MaxGenerations > 0 && g.generation >= g.options.MaxGenerations {
		g.autoStop(StopLimit)
		return false
	}
	return true
}

func (g *Game) autoStop(reason StopReason) {
	g.sched.Stop()
	g.log.Infof("auto-stopped at generation %d: %v", g.generation, reason)
	st := g.Status()
	for _, v := range g.views {
		v.AutoStopped(st, reason)
	}
}

//reset marks the whole grid dirty and asks the viewers for the full redraw
func (g *Game) reset() {
	g.dirty = Dirty{All: true}
	st := g.Status()
	for _, v := range g.views {
		v.Reset(st, g.grid.Clone())
	}
}

func (g *Game) refreshView() {
	st := g.Status()
	for _, v := range g.views {
		v.Refresh(st)
	}
}
