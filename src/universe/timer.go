package universe

import "time"

//MinTickInterval is the shortest interval of the TickerTimer, time.Ticker can't fire at 0
const MinTickInterval = time.Millisecond

//TickerTimer is the Timer based on time.Ticker
//each tick is handed to post together with the cancel channel of its arm,
//post must deliver fire to the goroutine owning the scheduler or give up when cancel is closed
type TickerTimer struct {
	post func(fire func(), cancel <-chan struct{})
}

func NewTickerTimer(post func(fire func(), cancel <-chan struct{})) *TickerTimer {
	return &TickerTimer{post: post}
}

func (t *TickerTimer) Arm(interval time.Duration, fire func()) (cancel func()) {
	if interval < MinTickInterval {
		interval = MinTickInterval
	}
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				//the ticker drops ticks while post is blocked, so ticks never pile up
				t.post(fire, stop)
			}
		}
	}()
	closed := false
	return func() {
		if !closed {
			closed = true
			close(stop)
		}
	}
}
