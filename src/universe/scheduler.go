package universe

import "time"

//Timer arms the repeating callback
//fire is called every interval until cancel is called
type Timer interface {
	Arm(interval time.Duration, fire func()) (cancel func())
}

//Scheduler drives the generations with the Timer
//It has two states, stopped and running, and at most one armed timer
//Scheduler is not safe for concurrent use: the timer callbacks must be delivered
//on the goroutine that owns it
type Scheduler struct {
	timer    Timer
	interval time.Duration
	running  bool
	cancel   func()
	epoch    uint64
	//step advances one generation and reports whether the run can continue
	step func() bool
	//onChange is called after every state or interval change
	onChange func()
}

func NewScheduler(t Timer, interval time.Duration, step func() bool) *Scheduler {
	if interval < 0 {
		interval = 0
	}
	return &Scheduler{timer: t, interval: interval, step: step}
}

//Running reports the state
func (s *Scheduler) Running() bool {
	return s.running
}

//Interval returns the last configured interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

//Start arms the timer, the previously armed one is cancelled first
//calling Start on the running scheduler changes the interval on the fly
func (s *Scheduler) Start(interval time.Duration) {
	if interval < 0 {
		interval = 0
	}
	s.disarm()
	s.interval = interval
	s.running = true
	epoch := s.epoch
	s.cancel = s.timer.Arm(interval, func() {
		//ticks of the cancelled arm can still be in flight
		if s.running && s.epoch == epoch {
			s.Tick()
		}
	})
	s.changed()
}

//Stop cancels the timer, no-op when stopped
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.disarm()
	s.running = false
	s.changed()
}

//Toggle switches between running and stopped, the last interval is reused
func (s *Scheduler) Toggle() {
	if s.running {
		s.Stop()
	} else {
		s.Start(s.interval)
	}
}

//SetSpeed converts the speed percent to the interval, re-arms the timer if running
func (s *Scheduler) SetSpeed(speed float64) {
	interval := SpeedToInterval(speed)
	if s.running {
		s.Start(interval)
		return
	}
	s.interval = interval
	s.changed()
}

//Tick runs one generation, the scheduler stops itself when the step reports the end
func (s *Scheduler) Tick() {
	if !s.step() {
		s.Stop()
	}
}

func (s *Scheduler) disarm() {
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
