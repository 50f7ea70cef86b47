package universe

import (
	"testing"
	"time"
)

//manualTimer records the arms and fires them only when the test says so
type manualTimer struct {
	arms      []time.Duration
	fires     []func()
	cancelled int
	active    int
}

func (m *manualTimer) Arm(interval time.Duration, fire func()) func() {
	m.arms = append(m.arms, interval)
	m.fires = append(m.fires, fire)
	m.active++
	done := false
	return func() {
		if !done {
			done = true
			m.cancelled++
			m.active--
		}
	}
}

//fire calls the callback of the last arm
func (m *manualTimer) fire() {
	m.fires[len(m.fires)-1]()
}

func newTestScheduler(results ...bool) (*Scheduler, *manualTimer, *int) {
	mt := &manualTimer{}
	steps := 0
	s := NewScheduler(mt, 100*time.Millisecond, func() bool {
		steps++
		if steps <= len(results) {
			return results[steps-1]
		}
		return true
	})
	return s, mt, &steps
}

func TestSchedulerStartsStopped(t *testing.T) {
	s, mt, _ := newTestScheduler()
	if s.Running() || len(mt.arms) != 0 {
		t.Fatalf("new scheduler is running or armed")
	}
}

func TestSchedulerStartReplacesTimer(t *testing.T) {
	s, mt, _ := newTestScheduler()
	s.Start(200 * time.Millisecond)
	s.Start(50 * time.Millisecond)

	if !s.Running() {
		t.Fatalf("scheduler is not running")
	}
	if mt.active != 1 || mt.cancelled != 1 {
		t.Fatalf("active=%d cancelled=%d, want one active timer and one cancelled", mt.active, mt.cancelled)
	}
	if s.Interval() != 50*time.Millisecond || mt.arms[1] != 50*time.Millisecond {
		t.Fatalf("interval = %v, arms = %v", s.Interval(), mt.arms)
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s, mt, _ := newTestScheduler()
	s.Stop()
	s.Start(time.Millisecond)
	s.Stop()
	s.Stop()
	if s.Running() || mt.active != 0 || mt.cancelled != 1 {
		t.Fatalf("running=%v active=%d cancelled=%d", s.Running(), mt.active, mt.cancelled)
	}
}

func TestSchedulerToggleReusesInterval(t *testing.T) {
	s, mt, _ := newTestScheduler()
	s.Start(30 * time.Millisecond)
	s.Toggle()
	if s.Running() {
		t.Fatalf("toggle did not stop")
	}
	s.Toggle()
	if !s.Running() || mt.arms[len(mt.arms)-1] != 30*time.Millisecond {
		t.Fatalf("toggle did not restart with 30ms: %v", mt.arms)
	}
}

func TestSchedulerIgnoresStaleTicks(t *testing.T) {
	s, mt, steps := newTestScheduler()
	s.Start(10 * time.Millisecond)
	stale := mt.fires[0]
	mt.fire()
	if *steps != 1 {
		t.Fatalf("steps = %d after the first fire", *steps)
	}

	s.Stop()
	stale()
	if *steps != 1 {
		t.Fatalf("tick fired after stop")
	}

	s.Start(10 * time.Millisecond)
	stale()
	if *steps != 1 {
		t.Fatalf("tick of the cancelled arm fired after restart")
	}
	mt.fire()
	if *steps != 2 {
		t.Fatalf("steps = %d, want 2", *steps)
	}
}

func TestSchedulerStopsWhenStepEnds(t *testing.T) {
	s, mt, steps := newTestScheduler(true, false)
	s.Start(time.Millisecond)
	mt.fire()
	mt.fire()
	if s.Running() || mt.active != 0 {
		t.Fatalf("scheduler still running after the final step")
	}
	mt.fire()
	if *steps != 2 {
		t.Fatalf("steps = %d, want 2", *steps)
	}
}

func TestSchedulerManualTickWhileStopped(t *testing.T) {
	s, _, steps := newTestScheduler(false)
	s.Tick()
	s.Tick()
	if *steps != 2 || s.Running() {
		t.Fatalf("steps=%d running=%v", *steps, s.Running())
	}
}

func TestSetSpeed(t *testing.T) {
	s, mt, _ := newTestScheduler()
	s.SetSpeed(50)
	if s.Running() || len(mt.arms) != 0 || s.Interval() != 250*time.Millisecond {
		t.Fatalf("SetSpeed on stopped scheduler: running=%v arms=%v interval=%v", s.Running(), mt.arms, s.Interval())
	}
	s.Start(s.Interval())
	s.SetSpeed(100)
	if mt.active != 1 || mt.arms[len(mt.arms)-1] != 0 {
		t.Fatalf("SetSpeed on running scheduler did not re-arm at 0: %v", mt.arms)
	}
}

func TestSpeedToInterval(t *testing.T) {
	cases := []struct {
		speed float64
		want  time.Duration
	}{
		{0, 500 * time.Millisecond},
		{100, 0},
		{50, 250 * time.Millisecond},
		{80, 100 * time.Millisecond},
		{-20, 500 * time.Millisecond},
		{250, 0},
	}
	for _, c := range cases {
		if got := SpeedToInterval(c.speed); got != c.want {
			t.Errorf("SpeedToInterval(%v) = %v, want %v", c.speed, got, c.want)
		}
	}
	for _, speed := range []float64{0, 50, 100} {
		if got := IntervalToSpeed(SpeedToInterval(speed)); got != speed {
			t.Errorf("IntervalToSpeed(SpeedToInterval(%v)) = %v", speed, got)
		}
	}
}
