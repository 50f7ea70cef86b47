package universe

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerTimerFiresUntilCancelled(t *testing.T) {
	var fired atomic.Int32
	tt := NewTickerTimer(func(fire func(), cancel <-chan struct{}) {
		select {
		case <-cancel:
		default:
			fire()
		}
	})

	cancel := tt.Arm(0, func() { fired.Add(1) })
	deadline := time.Now().Add(5 * time.Second)
	for fired.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("ticker fired %d times in 5s", fired.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	cancel()

	time.Sleep(5 * time.Millisecond)
	n := fired.Load()
	time.Sleep(20 * time.Millisecond)
	if fired.Load() != n {
		t.Fatalf("ticker kept firing after cancel: %d -> %d", n, fired.Load())
	}
}
