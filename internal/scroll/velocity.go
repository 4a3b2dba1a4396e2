package scroll

import "time"

const (
	velocityWindow  = 100 * time.Millisecond
	velocitySamples = 16
)

type sample struct {
	at  time.Time
	pos float64
}

// VelocityTracker estimates pointer velocity in points per second from the
// samples of the last 100ms.
type VelocityTracker struct {
	samples []sample
}

func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

func (v *VelocityTracker) Add(at time.Time, pos float64) {
	v.samples = append(v.samples, sample{at: at, pos: pos})
	if len(v.samples) > velocitySamples {
		v.samples = v.samples[len(v.samples)-velocitySamples:]
	}
}

// Velocity returns the average velocity across the window, or 0 without
// enough data.
func (v *VelocityTracker) Velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	last := v.samples[len(v.samples)-1]
	first := last
	for i := len(v.samples) - 2; i >= 0; i-- {
		if last.at.Sub(v.samples[i].at) > velocityWindow {
			break
		}
		first = v.samples[i]
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (last.pos - first.pos) / dt
}
