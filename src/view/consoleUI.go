package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"torlife/src/logging"
	"torlife/src/universe"
)

//speedStep is the change of the speed percent for one key press
const speedStep = 10

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal front-end
//the viewer callbacks arrive on the universe goroutine, they are queued and applied
//on the gocui goroutine in the same order
type ConsoleUI struct {
	u     universe.Universe
	g     *gocui.Gui
	k     []keyBindings
	au    aurora.Aurora
	theme Theme
	log   *logging.Logger

	liveFiller string
	deadFiller string

	mu      sync.Mutex
	pending []func()

	//owned by the gocui goroutine
	frame   frame
	status  universe.Status
	speed   float64
	message string
}

//NewConsoleUI creates the gocui front-end, call Start to run it
func NewConsoleUI(u universe.Universe, theme Theme, log *logging.Logger) (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("create terminal ui: %w", err)
	}
	t := &ConsoleUI{
		u:     u,
		g:     g,
		au:    aurora.NewAurora(true),
		theme: theme,
		log:   log,
		speed: universe.IntervalToSpeed(u.Options().Interval),
	}
	t.liveFiller, t.deadFiller = theme.glyphs(t.au)

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Run/Stop", t.cmdToggle, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'f', "F", "Fit field to view", t.cmdFit, ""},
		{'+', "+", "Faster", t.cmdFaster, ""},
		{'-', "-", "Slower", t.cmdSlower, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return nil
}

//Start runs the gocui main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func (t *ConsoleUI) Advanced(st universe.Status, changes []universe.Change) {
	t.enqueue(func() {
		t.frame.apply(changes)
		t.status = st
	})
}

func (t *ConsoleUI) Edited(st universe.Status, changes []universe.Change) {
	t.enqueue(func() {
		t.frame.apply(changes)
		t.status = st
	})
}

func (t *ConsoleUI) AutoStopped(st universe.Status, reason universe.StopReason) {
	t.enqueue(func() {
		t.status = st
		t.message = fmt.Sprintf("auto-stopped at generation %d (%v)", st.Generation, reason)
	})
}

func (t *ConsoleUI) Reset(st universe.Status, snapshot *universe.Grid) {
	t.enqueue(func() {
		t.frame.reset(snapshot)
		t.status = st
	})
}

func (t *ConsoleUI) Refresh(st universe.Status) {
	t.enqueue(func() {
		t.status = st
		t.speed = universe.IntervalToSpeed(st.Interval)
	})
}

//enqueue keeps the order of the viewer calls: gocui.Update gives no ordering guarantee,
//so every update drains the whole queue
func (t *ConsoleUI) enqueue(fn func()) {
	t.mu.Lock()
	t.pending = append(t.pending, fn)
	t.mu.Unlock()
	t.g.Update(t.flush)
}

func (t *ConsoleUI) flush(g *gocui.Gui) error {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()
	if len(pending) == 0 {
		return nil
	}
	for _, fn := range pending {
		fn()
	}
	t.renderField(g)
	t.renderConfiguration(g)
	t.renderStatus(g)
	return nil
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View("battlefield")
	if e != nil {
		return
	}
	//the view is redrawn from the frame, the frame itself is only patched with the changes
	v.Clear()
	maxW, maxH := v.Size()
	var b bytes.Buffer
	overflow := t.au.Colorize("The field size is larger than the viewing area", t.theme.Alert).BgBlack().String()
	t.frame.render(&b, maxW, maxH, t.liveFiller, t.deadFiller, overflow)
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View("status")
	if e != nil {
		return
	}
	s := t.status
	mode := t.au.Colorize("stopped", aurora.BlueFg).String()
	if s.Running {
		mode = t.au.Colorize("running", t.theme.Accent).String()
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
	_, _ = fmt.Fprintln(v, t.renderProp("Step time", "%v", s.StepTime.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
	if t.message != "" {
		_, _ = fmt.Fprintln(v, " "+t.au.Colorize(t.message, t.theme.Alert).String())
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	v, e := g.View("configuration")
	if e != nil {
		return
	}
	s := t.status
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", s.Width, s.Height))
	_, _ = fmt.Fprintln(v, t.renderProp("Speed", "%.0f%% (%v)", t.speed, s.Interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", s.Engine))
	_, _ = fmt.Fprintln(v, t.renderProp("Limit", "%v generations", t.u.Options().MaxGenerations))
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Colorize(name, t.theme.Accent).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 30
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "Toroidal \"Life\" simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.au.Colorize(k.name, t.theme.Accent).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

//report shows the error of a command in the status view
func (t *ConsoleUI) report(err error) error {
	if err == nil {
		return nil
	}
	t.log.Warnf("command failed: %v", err)
	t.enqueue(func() { t.message = err.Error() })
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	return t.report(t.u.Step())
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.message = ""
	return t.report(t.u.Run())
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	return t.report(t.u.Stop())
}

func (t *ConsoleUI) cmdToggle(_ *gocui.View) error {
	t.message = ""
	return t.report(t.u.Toggle())
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.message = ""
	return t.report(t.u.Clear())
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	return t.report(t.u.SettleWithRandomData())
}

func (t *ConsoleUI) cmdFit(_ *gocui.View) error {
	v, err := t.g.View("battlefield")
	if err != nil {
		return nil
	}
	w, h := v.Size()
	t.message = ""
	return t.report(t.u.Initialize(w, h))
}

func (t *ConsoleUI) cmdFaster(_ *gocui.View) error {
	return t.report(t.u.SetSpeed(t.speed + speedStep))
}

func (t *ConsoleUI) cmdSlower(_ *gocui.View) error {
	return t.report(t.u.SetSpeed(t.speed - speedStep))
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	_, err := t.u.InverseCell(cx+ox, cy+oy)
	return t.report(err)
}
