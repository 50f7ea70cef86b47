package universe

import (
	"fmt"
	"sort"
)

//Engine computes the next generation of the grid
//Implementations must give exactly the same result as Step
type Engine interface {
	Name() string
	Next(g *Grid, d Dirty) Generation
}

//Dirty tells the engine what changed since its previous call
type Dirty struct {
	//All is set after the grid was reset or reseeded and nothing can be reused
	All bool
	//Cells are the indices flipped since the previous call, by a generation or by the user
	Cells []int
}

type engineFactory func(workers int) Engine

var engines = map[string]engineFactory{
	"base": func(int) Engine {
		return baseEngine{}
	},
	"parallel": func(workers int) Engine {
		return NewParallelEngine(workers)
	},
	"dirty": func(int) Engine {
		return NewDirtyEngine()
	},
}

//NewEngine creates the registered engine by name
//workers is used by the parallel engine only, 0 means one worker per CPU
func NewEngine(name string, workers int) (Engine, error) {
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return f(workers), nil
}

//EngineNames returns the sorted names of the registered engines
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//baseEngine is the simplest implementation: the full sequential pass on every call
type baseEngine struct{}

func (baseEngine) Name() string { return "base" }

func (baseEngine) Next(g *Grid, _ Dirty) Generation {
	return Step(g)
}
