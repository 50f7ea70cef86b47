package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"torlife/src/logging"
	"torlife/src/universe"
	"torlife/src/view"
)

var (
	//the test sample with 3 stable patterns and a glider
	testSample = [][2]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
		{9, 1}, {10, 2}, {8, 3}, {9, 3}, {10, 3},
	}
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	printField  bool
	speed       float64
	theme       string
	logLevel    string
	logFile     string
}

func main() {
	eo, uo := initOptions()

	log, closeLog, err := newLogger(eo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	uo.Logger = log

	theme, err := view.LookupTheme(eo.theme)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	u, err := universe.NewBaseUniverse(*uo)
	if err != nil {
		log.Errorf("create universe: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if eo.randomData {
		err = u.SettleWithRandomData()
	} else {
		err = u.Settle(testSample)
	}
	if err != nil {
		//the sample does not fit into a tiny field, start empty
		log.Warnf("seeding failed: %v", err)
	}

	if eo.interactive {
		err = runInteractive(u, theme, log)
	} else {
		err = runHeadless(u, uo, theme, eo.printField)
	}
	u.Close()
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runInteractive(u *universe.BaseUniverse, theme view.Theme, log *logging.Logger) error {
	v, err := view.NewConsoleUI(u, theme, log)
	if err != nil {
		return err
	}
	if err := u.RegisterViewer(v); err != nil {
		return err
	}
	return v.Start()
}

func runHeadless(u *universe.BaseUniverse, uo *universe.Options, theme view.Theme, printField bool) error {
	out := view.NewConsoleOut(os.Stdout, theme, true, 10, printField)
	stateCh := make(universe.ChanViewer, 10) //the buffered channel to getting the universe events
	if err := u.RegisterViewer(out); err != nil {
		return err
	}
	if err := u.RegisterViewer(stateCh); err != nil {
		return err
	}

	out.Start(*uo)
	if err := u.Run(); err != nil {
		return err
	}
	for ev := range stateCh {
		if ev.Kind == universe.EventAutoStopped {
			break
		}
	}
	return nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultOptions
	uo = &o
	eo = &EnvOptions{speed: -1, theme: view.DefaultTheme, logLevel: "info"}

	flaggy.SetName("torlife")
	flaggy.SetDescription("Conway's \"Life\" on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Float64(&eo.speed, "p", "speed", "Simulation speed in percent, 0 is 500ms per step and 100 the fastest (overrides interval)")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of a live cell for the random seeding")
	flaggy.Int64(&uo.Seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(universe.EngineNames(), "|")+"]")
	flaggy.Int(&uo.Workers, "w", "workers", "Workers of the parallel engine, 0 is one per CPU")
	flaggy.Int(&uo.MaxGenerations, "s", "maxSteps", "Limit the simulation to maxSteps generations, 0 is unlimited")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.Bool(&eo.printField, "", "print", "Print the final field in the headless mode")
	flaggy.String(&eo.theme, "t", "theme", "Colour scheme ["+strings.Join(view.ThemeNames(), "|")+"]")
	flaggy.String(&eo.logLevel, "", "log-level", "Log level [debug|info|warn|error|none]")
	flaggy.String(&eo.logFile, "", "log-file", "Write the log to the file instead of stderr")

	flaggy.Parse()

	if eo.speed >= 0 {
		uo.Interval = universe.SpeedToInterval(eo.speed)
	}
	if err := uo.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	return
}

//newLogger writes to the log file when given, otherwise to stderr
//the interactive mode without a log file logs nothing, the terminal belongs to the ui
func newLogger(eo *EnvOptions) (*logging.Logger, func(), error) {
	level := logging.LevelFromString(eo.logLevel)
	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case eo.logFile != "":
		f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	case eo.interactive:
		return logging.Discard(), closer, nil
	}
	l := logging.New(out, level)
	l.Debugf("logging started at %v", time.Now().Format(time.RFC3339))
	return l, closer, nil
}
