package view

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"torlife/src/universe"
)

//ConsoleOut is the headless front-end: prints the progress and the final field
type ConsoleOut struct {
	w          io.Writer
	au         aurora.Aurora
	theme      Theme
	frame      frame
	every      int
	printField bool
	startTime  time.Time
}

//NewConsoleOut creates the printer, the progress line is written every `every` generations
func NewConsoleOut(w io.Writer, theme Theme, colors bool, every int, printField bool) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{
		w:          w,
		au:         aurora.NewAurora(colors),
		theme:      theme,
		every:      every,
		printField: printField,
	}
}

//Start prints the configuration and starts the clock
func (c *ConsoleOut) Start(o universe.Options) {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":       fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":        o.Interval,
		"Engine":          o.Engine,
		"Max generations": o.MaxGenerations,
	})
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) Advanced(st universe.Status, changes []universe.Change) {
	c.frame.apply(changes)
	if st.Generation%c.every == 0 {
		fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v, changed: %v\n", st.Generation, st.LiveCells, len(changes))
	}
}

func (c *ConsoleOut) Edited(_ universe.Status, changes []universe.Change) {
	c.frame.apply(changes)
}

func (c *ConsoleOut) AutoStopped(st universe.Status, reason universe.StopReason) {
	fmt.Fprintln(c.w, "\n"+c.au.Colorize("Finished:", c.theme.Alert).String())
	resultData := map[string]interface{}{
		"Last generation": st.Generation,
		"Live cells":      st.LiveCells,
		"Reason":          reason,
	}
	if !c.startTime.IsZero() {
		resultData["Total time"] = time.Since(c.startTime).Round(time.Millisecond)
	}
	c.printHashData(resultData)
	if c.printField {
		c.writeField()
	}
}

func (c *ConsoleOut) Reset(_ universe.Status, snapshot *universe.Grid) {
	c.frame.reset(snapshot)
}

func (c *ConsoleOut) Refresh(universe.Status) {}

func (c *ConsoleOut) writeField() {
	var b bytes.Buffer
	live, dead := c.theme.glyphs(c.au)
	c.frame.render(&b, c.frame.width, c.frame.height, live, dead, "")
	b.WriteByte('\n')
	_, _ = c.w.Write(b.Bytes())
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Colorize(propName, c.theme.Accent), d[propName])
	}
}
