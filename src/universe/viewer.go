package universe

//Change is one cell which flipped during the last generation
type Change struct {
	Index int
	X     int
	Y     int
	Alive bool
}

//StopReason tells why the universe stopped by itself
type StopReason int

const (
	//StopConverged means the last generation changed nothing (still life or extinction)
	StopConverged StopReason = iota
	//StopLimit means the MaxGenerations limit was reached
	StopLimit
)

func (r StopReason) String() string {
	switch r {
	case StopConverged:
		return "converged"
	case StopLimit:
		return "generation limit"
	default:
		return "unknown"
	}
}

//Viewer is the interface to any front-end that displays the simulation
//All methods are called from the goroutine that owns the game, they must not block for long
//and must not call back into the universe synchronously
type Viewer interface {
	//Advanced is called after every generation with the cells that flipped, in index order
	Advanced(st Status, changes []Change)
	//Edited is called when the user flipped cells, the generation did not advance
	Edited(st Status, changes []Change)
	//AutoStopped is called when the universe stopped by itself
	AutoStopped(st Status, reason StopReason)
	//Reset asks for the full redraw: the grid was created, cleared or reseeded
	Reset(st Status, snapshot *Grid)
	//Refresh is called when the running state or the speed changed
	Refresh(st Status)
}

type EventKind int

func (k EventKind) String() string {
	switch k {
	case EventAdvanced:
		return "advanced"
	case EventEdited:
		return "edited"
	case EventAutoStopped:
		return "auto-stopped"
	case EventReset:
		return "reset"
	case EventRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

const (
	EventAdvanced EventKind = iota
	EventEdited
	EventAutoStopped
	EventReset
	EventRefresh
)

//Event is the Viewer call packed for the channel
type Event struct {
	Kind     EventKind
	Status   Status
	Changes  []Change
	Reason   StopReason
	Snapshot *Grid
}

//ChanViewer writes every viewer call to the channel
//the channel must be drained by the receiver, otherwise the game blocks
type ChanViewer chan Event

func (c ChanViewer) Advanced(st Status, changes []Change) {
	c <- Event{Kind: EventAdvanced, Status: st, Changes: changes}
}

func (c ChanViewer) Edited(st Status, changes []Change) {
	c <- Event{Kind: EventEdited, Status: st, Changes: changes}
}

func (c ChanViewer) AutoStopped(st Status, reason StopReason) {
	c <- Event{Kind: EventAutoStopped, Status: st, Reason: reason}
}

func (c ChanViewer) Reset(st Status, snapshot *Grid) {
	c <- Event{Kind: EventReset, Status: st, Snapshot: snapshot}
}

func (c ChanViewer) Refresh(st Status) {
	c <- Event{Kind: EventRefresh, Status: st}
}
