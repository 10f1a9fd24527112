// Package frameloop drives a per-frame callback from an external scheduler
// such as requestAnimationFrame.
package frameloop

import "time"

// Loop runs Frame for every Tick and asks Schedule for the next tick until
// Done is closed. Frame may close Done; no further tick is scheduled then.
type Loop struct {
	Done     <-chan struct{}
	Schedule func()
	Frame    func(dt time.Duration)

	last float64
}

// Tick handles one frame stamped at now milliseconds. The first frame
// reports a zero dt.
func (l *Loop) Tick(now float64) {
	if l.stopped() {
		return
	}
	var dt time.Duration
	if l.last > 0 {
		dt = time.Duration((now - l.last) * float64(time.Millisecond))
	}
	l.last = now
	l.Frame(dt)
	if l.stopped() {
		return
	}
	l.Schedule()
}

func (l *Loop) stopped() bool {
	select {
	case <-l.Done:
		return true
	default:
		return false
	}
}
