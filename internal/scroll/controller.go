// Package scroll implements a single-axis scroll position with elastic
// overshoot while dragging and a spring that settles it back inside its
// bounds after release.
//
// Offsets are in points. The valid range is [-MaxOffset, 0]; 0 shows the
// top of the content.
package scroll

import (
	"math"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
)

// State is the controller's phase.
type State int

const (
	Idle State = iota
	Dragging
	Settling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Params holds the physics constants.
type Params struct {
	Base             float64
	PerInterval      float64
	Threshold        float64
	Decay            float64
	Stiffness        float64
	Damping          float64
	DragSensitivity  float64
	WheelSensitivity float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Base:             constants.ScrollBase,
		PerInterval:      constants.ScrollPerInterval,
		Threshold:        constants.ElasticThreshold,
		Decay:            constants.ReleaseDecay,
		Stiffness:        constants.SpringStiffness,
		Damping:          constants.SpringDamping,
		DragSensitivity:  constants.DragSensitivity,
		WheelSensitivity: constants.WheelSensitivity,
	}
}

// withDefaults fills zero or negative fields from DefaultParams.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&p.Base, d.Base)
	fill(&p.PerInterval, d.PerInterval)
	fill(&p.Threshold, d.Threshold)
	fill(&p.Decay, d.Decay)
	fill(&p.Stiffness, d.Stiffness)
	fill(&p.Damping, d.Damping)
	fill(&p.DragSensitivity, d.DragSensitivity)
	fill(&p.WheelSensitivity, d.WheelSensitivity)
	return p
}

const (
	maxSubstep     = time.Millisecond
	maxSettleTime  = 3 * time.Second
	snapDistance   = 0.5
	snapVelocity   = 0.5
	pressEdgeRatio = 0.999
)

// Controller tracks one scroll axis. It is not safe for concurrent use; the
// host drives it from its event loop.
type Controller struct {
	p Params

	state     State
	maxOffset float64

	offset float64
	// raw is the unbounded drag position; offset is raw passed through the
	// rubber band.
	raw float64

	target   float64
	velocity float64
	settled  time.Duration

	tracker VelocityTracker
}

// New returns an idle controller at the top of a list of count items.
func New(p Params, count int) *Controller {
	c := &Controller{p: p.withDefaults()}
	c.maxOffset = c.maxFor(count)
	return c
}

func (c *Controller) maxFor(count int) float64 {
	if count < 0 {
		count = 0
	}
	return c.p.Base + c.p.PerInterval*float64(count)
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Offset() float64 { return c.offset }

func (c *Controller) MaxOffset() float64 { return c.maxOffset }

func (c *Controller) Target() float64 { return c.target }

func (c *Controller) Threshold() float64 { return c.p.Threshold }

func (c *Controller) Velocity() float64 { return c.velocity }

func (c *Controller) Params() Params { return c.p }

func (c *Controller) Animating() bool { return c.state == Settling }

func (c *Controller) InBounds() bool { return c.offset <= 0 && c.offset >= -c.maxOffset }

func (c *Controller) clamp(v float64) float64 {
	return math.Max(-c.maxOffset, math.Min(0, v))
}

// SetIntervalCount resizes the scroll range. An idle controller left out of
// bounds by a shrinking list settles back inside.
func (c *Controller) SetIntervalCount(count int) {
	c.maxOffset = c.maxFor(count)
	switch c.state {
	case Idle:
		if !c.InBounds() {
			c.settleTo(c.clamp(c.offset), 0)
		}
	case Settling:
		c.target = c.clamp(c.target)
	}
}

// band compresses an excursion past a bound toward Threshold without ever
// reaching it.
func (c *Controller) band(x float64) float64 {
	t := c.p.Threshold
	return t * x / (x + t)
}

// unband inverts band for 0 <= y < Threshold.
func (c *Controller) unband(y float64) float64 {
	t := c.p.Threshold
	return t * y / (t - y)
}

// elastic maps a raw drag position to the displayed offset.
func (c *Controller) elastic(raw float64) float64 {
	switch {
	case raw > 0:
		return c.band(raw)
	case raw < -c.maxOffset:
		return -c.maxOffset - c.band(-c.maxOffset-raw)
	default:
		return raw
	}
}

// rawFor inverts elastic, pulling offsets at or past the asymptote just
// inside it so the inverse stays finite.
func (c *Controller) rawFor(offset float64) float64 {
	limit := c.p.Threshold * pressEdgeRatio
	switch {
	case offset > 0:
		return c.unband(math.Min(offset, limit))
	case offset < -c.maxOffset:
		return -c.maxOffset - c.unband(math.Min(-c.maxOffset-offset, limit))
	default:
		return offset
	}
}

// Press starts a drag. A settle in progress is cancelled and the drag picks
// up from the current, possibly elastic, offset.
func (c *Controller) Press(at time.Time) {
	c.raw = c.rawFor(c.offset)
	c.offset = c.elastic(c.raw)
	c.velocity = 0
	c.state = Dragging
	c.tracker.Reset()
	c.tracker.Add(at, c.raw)
}

// Drag moves the content by delta points of pointer travel.
func (c *Controller) Drag(delta float64, at time.Time) {
	if c.state != Dragging {
		c.Press(at)
	}
	c.raw += delta * c.p.DragSensitivity
	c.offset = c.elastic(c.raw)
	c.tracker.Add(at, c.raw)
}

// Release ends a drag, projects where momentum would carry the content and
// starts the settle spring toward that point clamped into bounds.
func (c *Controller) Release(at time.Time) {
	if c.state != Dragging {
		return
	}
	c.tracker.Add(at, c.raw)
	v := c.tracker.Velocity()
	c.settleTo(c.clamp(c.offset+v*c.p.Decay), 0)
}

// Wheel applies a discrete scroll step, clamped to bounds.
func (c *Controller) Wheel(delta float64) {
	if c.state == Dragging {
		return
	}
	c.offset = c.clamp(c.offset + delta*c.p.WheelSensitivity)
	c.raw = c.offset
	c.velocity = 0
	c.state = Idle
}

// ScrollTo settles toward offset, clamped to bounds.
func (c *Controller) ScrollTo(offset float64) {
	if c.state == Dragging {
		return
	}
	c.settleTo(c.clamp(offset), c.velocity)
}

func (c *Controller) settleTo(target, velocity float64) {
	c.target = target
	c.velocity = velocity
	c.settled = 0
	c.state = Settling
}

// Step advances the settle spring by dt and reports whether it is still
// running. The spring has unit mass and is integrated with semi-implicit
// Euler substeps no longer than a millisecond.
func (c *Controller) Step(dt time.Duration) bool {
	if c.state != Settling {
		return false
	}
	if dt <= 0 {
		return true
	}

	for remaining := dt; remaining > 0; {
		h := min(remaining, maxSubstep)
		remaining -= h
		secs := h.Seconds()

		accel := -c.p.Stiffness*(c.offset-c.target) - c.p.Damping*c.velocity
		c.velocity += accel * secs
		c.offset += c.velocity * secs
	}
	c.settled += dt

	if (math.Abs(c.offset-c.target) < snapDistance && math.Abs(c.velocity) < snapVelocity) || c.settled >= maxSettleTime {
		c.offset = c.target
		c.raw = c.target
		c.velocity = 0
		c.state = Idle
		return false
	}
	return true
}
