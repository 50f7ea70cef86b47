package universe

import (
	"sync"
	"time"
)

//Universe is the thread-safe control surface used by the front-ends
type Universe interface {
	Status() Status
	Options() Options
	Snapshot() *Grid
	RegisterViewer(v Viewer) error
	Initialize(width int, height int) error
	InverseCell(x int, y int) (bool, error)
	Settle(coords [][2]int) error
	SettleWithRandomData() error
	Randomize(density float64) error
	Run() error
	Start(interval time.Duration) error
	Stop() error
	Toggle() error
	Step() error
	SetSpeed(speed float64) error
	Clear() error
	Close()
}

var (
	_ Universe = (*BaseUniverse)(nil)
	_ Viewer   = ChanViewer(nil)
)

//BaseUniverse runs the Game on its own goroutine
//every command and every timer tick is executed by mainLoop one after another,
//so the game never sees two operations at the same time and ticks never overlap
type BaseUniverse struct {
	game      *Game
	controlCh chan func()
	closeCh   chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

//NewBaseUniverse creates the universe and starts the main loop
func NewBaseUniverse(o Options) (*BaseUniverse, error) {
	u := &BaseUniverse{
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	g, err := NewGame(o, NewTickerTimer(u.post))
	if err != nil {
		return nil, err
	}
	u.game = g
	go u.mainLoop()
	return u, nil
}

//Status returns current universe status
func (u *BaseUniverse) Status() (st Status) {
	_ = u.exec(func() { st = u.game.Status() })
	return
}

//Options returns the universe configuration
func (u *BaseUniverse) Options() Options {
	return u.game.Options()
}

//Snapshot returns the copy of the grid, nil after Close
func (u *BaseUniverse) Snapshot() (g *Grid) {
	_ = u.exec(func() { g = u.game.Snapshot() })
	return
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) error {
	return u.exec(func() { u.game.AddViewer(v) })
}

//Initialize stops the simulation and recreates the field with the new dimensions
func (u *BaseUniverse) Initialize(width int, height int) (err error) {
	if e := u.exec(func() { err = u.game.Initialize(width, height) }); e != nil {
		return e
	}
	return
}

//InverseCell inverses the cell state at point x, y and returns the new state
func (u *BaseUniverse) InverseCell(x int, y int) (alive bool, err error) {
	if e := u.exec(func() { alive, err = u.game.ToggleCell(x, y) }); e != nil {
		return false, e
	}
	return
}

//Settle settles the universe with live cells at the [x, y] coordinates
func (u *BaseUniverse) Settle(coords [][2]int) (err error) {
	if e := u.exec(func() { err = u.game.Settle(coords) }); e != nil {
		return e
	}
	return
}

//SettleWithRandomData populates the universe with the configured density
func (u *BaseUniverse) SettleWithRandomData() error {
	return u.Randomize(u.game.Options().Density)
}

//Randomize populates the universe, each cell is alive with the probability density
func (u *BaseUniverse) Randomize(density float64) (err error) {
	if e := u.exec(func() { err = u.game.Randomize(density) }); e != nil {
		return e
	}
	return
}

//Run starts the simulation with the last interval
func (u *BaseUniverse) Run() error {
	return u.exec(u.game.Run)
}

//Start starts the simulation or changes the interval of the running one
func (u *BaseUniverse) Start(interval time.Duration) error {
	return u.exec(func() { u.game.Start(interval) })
}

//Stop stops the simulation
func (u *BaseUniverse) Stop() error {
	return u.exec(u.game.Stop)
}

//Toggle runs the stopped simulation and stops the running one
func (u *BaseUniverse) Toggle() error {
	return u.exec(u.game.Toggle)
}

//Step does one generation
func (u *BaseUniverse) Step() error {
	return u.exec(u.game.Tick)
}

//SetSpeed sets the speed percent, 0 is the slowest and 100 the fastest
func (u *BaseUniverse) SetSpeed(speed float64) error {
	return u.exec(func() { u.game.SetSpeed(speed) })
}

//Clear stops the simulation, kills all cells and resets the counter
func (u *BaseUniverse) Clear() error {
	return u.exec(u.game.Clear)
}

//Close stops the simulation and the main loop, waits for the loop to exit
//must not be called from a viewer callback
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
	<-u.doneCh
}

//mainLoop - the main cycle, waits for commands and executes them
func (u *BaseUniverse) mainLoop() {
	defer close(u.doneCh)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			u.game.Stop()
			return
		}
	}
}

//exec runs fn on the main loop and waits for it
func (u *BaseUniverse) exec(fn func()) error {
	done := make(chan struct{})
	select {
	case u.controlCh <- func() { fn(); close(done) }:
	case <-u.closeCh:
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-u.doneCh:
		//the loop exits only between commands, so fn either ran completely or not at all
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

//post delivers the timer tick to the main loop
func (u *BaseUniverse) post(fire func(), cancel <-chan struct{}) {
	select {
	case u.controlCh <- fire:
	case <-cancel:
	case <-u.closeCh:
	}
}
