package universe

import (
	"fmt"
	"math"
	"time"

	"torlife/src/logging"
)

//Options represents the universe's configurable options
type Options struct {
	Width          int
	Height         int
	Interval       time.Duration
	Density        float64
	Seed           int64 //0 means seeding from the clock
	Engine         string
	Workers        int //parallel engine workers, 0 means one per CPU
	MaxGenerations int //0 means unlimited
	Logger         *logging.Logger
}

//Status represents the status of the universe at the concrete moment
type Status struct {
	Generation int
	Running    bool
	LiveCells  int
	Width      int
	Height     int
	Interval   time.Duration
	StepTime   time.Duration
	Engine     string
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxGenerations     = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefDensity            = 0.15
	DefEngine             = "base"
)

//speed to interval mapping bounds
const (
	MaxDelay = 500 * time.Millisecond
	MinDelay = 0
)

var DefaultOptions = Options{
	Width:          DefWidth,
	Height:         DefHeight,
	Interval:       DefSimulationInterval,
	Density:        DefDensity,
	Engine:         DefEngine,
	MaxGenerations: DefMaxGenerations,
}

//Validate checks the options before the universe is created
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, o.Width, o.Height)
	}
	if math.IsNaN(o.Density) || o.Density < 0 || o.Density > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, o.Density)
	}
	if _, ok := engines[o.Engine]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, o.Engine)
	}
	if o.Interval < 0 {
		return fmt.Errorf("negative interval %v", o.Interval)
	}
	if o.Workers < 0 || o.MaxGenerations < 0 {
		return fmt.Errorf("negative workers (%d) or max generations (%d)", o.Workers, o.MaxGenerations)
	}
	return nil
}

//SpeedToInterval maps the speed percent to the tick delay
//speed 0 is the slowest (MaxDelay), 100 the fastest (MinDelay), out of range values are clamped
func SpeedToInterval(speed float64) time.Duration {
	if math.IsNaN(speed) || speed < 0 {
		speed = 0
	} else if speed > 100 {
		speed = 100
	}
	return MaxDelay - time.Duration(speed/100*float64(MaxDelay-MinDelay))
}

//IntervalToSpeed is the inverse of SpeedToInterval
func IntervalToSpeed(d time.Duration) float64 {
	if d <= MinDelay {
		return 100
	}
	if d >= MaxDelay {
		return 0
	}
	return float64(MaxDelay-d) / float64(MaxDelay-MinDelay) * 100
}
