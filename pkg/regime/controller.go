package regime

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// State of the controller.
type State string

const (
	// StateIdle means no schedule is active; the static config parameters
	// apply unchanged.
	StateIdle State = "idle"
	// StateActive means a segment's parameters apply directly.
	StateActive State = "active"
	// StateTransitioning means parameters are interpolating between two
	// segments.
	StateTransitioning State = "transitioning"
)

// transition exists only while interpolating and is discarded on completion.
type transition struct {
	source  Params
	target  Params
	elapsed int
	total   int
}

// Controller walks a schedule one step at a time and resolves the active
// (drift, volatility) pair for each step. Transition steps count toward the
// entered segment's duration, so a schedule of durations d1..dn yields
// segment boundaries at exact cumulative-sum step indices.
type Controller struct {
	static   Params
	schedule *Schedule
	idx      int
	elapsed  int
	trans    *transition
	held     bool
	total    int
}

// NewController starts idle with the given static parameters.
func NewController(static Params) *Controller {
	return &Controller{static: static}
}

// Enable installs a schedule and activates its first segment. The first
// segment's parameters apply immediately; its transition length is ignored
// because there is no source to interpolate from.
func (c *Controller) Enable(s Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.schedule = &s
	c.idx = 0
	c.elapsed = 0
	c.trans = nil
	c.held = false
	c.total = 0
	return nil
}

// Disable drops the schedule and returns to the static parameters.
func (c *Controller) Disable() {
	c.schedule = nil
	c.trans = nil
	c.held = false
}

// Force cancels any in-flight transition and jumps straight to the indexed
// segment with its resolved parameters.
func (c *Controller) Force(index int) error {
	if c.schedule == nil {
		return fmt.Errorf("regime control is not enabled")
	}
	if index < 0 || index >= len(c.schedule.Segments) {
		return fmt.Errorf("segment index %d out of range [0,%d)", index, len(c.schedule.Segments))
	}
	c.idx = index
	c.elapsed = 0
	c.trans = nil
	c.held = false
	return nil
}

// State returns the current controller state.
func (c *Controller) State() State {
	switch {
	case c.schedule == nil:
		return StateIdle
	case c.trans != nil:
		return StateTransitioning
	default:
		return StateActive
	}
}

// Step consumes one generation step and returns the parameters governing it.
func (c *Controller) Step() Params {
	if c.schedule == nil {
		return c.static
	}
	c.total++

	seg := c.schedule.Segments[c.idx]
	if !c.held && c.elapsed >= seg.Duration {
		c.rollover()
	}

	var p Params
	if c.trans != nil {
		c.trans.elapsed++
		if c.trans.elapsed >= c.trans.total {
			// Snap exactly to the target, no residual interpolation error.
			p = c.trans.target
			c.trans = nil
		} else {
			fraction := decimal.NewFromInt(int64(c.trans.elapsed)).
				Div(decimal.NewFromInt(int64(c.trans.total)))
			p = Lerp(c.trans.source, c.trans.target, fraction)
		}
	} else {
		p = c.schedule.Segments[c.idx].resolve()
	}

	if !c.held {
		c.elapsed++
	}
	return p
}

// rollover advances the segment cursor. A non-repeating schedule that runs
// out of segments holds the last segment's parameters indefinitely.
func (c *Controller) rollover() {
	next := c.idx + 1
	if next >= len(c.schedule.Segments) {
		if !c.schedule.Repeat {
			c.held = true
			return
		}
		next = 0
	}

	source := c.schedule.Segments[c.idx].resolve()
	c.idx = next
	c.elapsed = 0

	seg := c.schedule.Segments[next]
	if seg.Transition > 0 {
		c.trans = &transition{source: source, target: seg.resolve(), total: seg.Transition}
	} else {
		c.trans = nil
	}
}

// Info is a point-in-time snapshot of the controller.
type Info struct {
	State        State
	Regime       Regime
	SegmentIndex int
	Elapsed      int
	TotalSteps   int
	Held         bool
}

// Info reports the controller's position in the schedule.
func (c *Controller) Info() Info {
	info := Info{State: c.State(), TotalSteps: c.total}
	if c.schedule != nil {
		info.Regime = c.schedule.Segments[c.idx].Regime
		info.SegmentIndex = c.idx
		info.Elapsed = c.elapsed
		info.Held = c.held
	}
	return info
}
