// Package regime provides scripted control of market conditions: a schedule
// of named regimes feeds time-varying drift and volatility into the price
// path, with optional smooth interpolation across regime changes.
package regime

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime is a named market condition.
type Regime string

const (
	Bull     Regime = "bull"
	Bear     Regime = "bear"
	Sideways Regime = "sideways"
)

// Params is the (drift, volatility) pair a regime feeds into the price path.
type Params struct {
	Drift      decimal.Decimal
	Volatility decimal.Decimal
}

var regimeParams = map[Regime]Params{
	// Bear markets fall harder and run hotter than bulls.
	Bull:     {Drift: decimal.RequireFromString("0.005"), Volatility: decimal.RequireFromString("0.015")},
	Bear:     {Drift: decimal.RequireFromString("-0.007"), Volatility: decimal.RequireFromString("0.025")},
	Sideways: {Drift: decimal.Zero, Volatility: decimal.RequireFromString("0.010")},
}

// Valid reports whether r names a known regime.
func (r Regime) Valid() bool {
	_, ok := regimeParams[r]
	return ok
}

// Params resolves the regime tag to its default drift and volatility.
func (r Regime) Params() Params {
	p, ok := regimeParams[r]
	if !ok {
		return regimeParams[Sideways]
	}
	return p
}

// Lerp interpolates linearly between two parameter sets at the given
// fraction. Callers always derive fraction from an elapsed/total counter
// pair, never by incremental addition, so long transitions cannot drift.
func Lerp(source, target Params, fraction decimal.Decimal) Params {
	return Params{
		Drift:      source.Drift.Add(target.Drift.Sub(source.Drift).Mul(fraction)),
		Volatility: source.Volatility.Add(target.Volatility.Sub(source.Volatility).Mul(fraction)),
	}
}

// Segment is one scheduled stretch of a regime. Transition, when positive,
// is the number of steps spent interpolating into this segment's parameters
// when it is entered. Params overrides the regime's default parameters.
type Segment struct {
	Regime     Regime
	Duration   int
	Transition int
	Params     *Params
}

func (s Segment) resolve() Params {
	if s.Params != nil {
		return *s.Params
	}
	return s.Regime.Params()
}

func (s Segment) validate() error {
	if !s.Regime.Valid() {
		return fmt.Errorf("unknown regime %q", s.Regime)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("regime %q: duration must be positive, got %d", s.Regime, s.Duration)
	}
	if s.Transition < 0 {
		return fmt.Errorf("regime %q: transition must be non-negative, got %d", s.Regime, s.Transition)
	}
	// Transition steps count toward the segment's duration, so a longer
	// transition could never complete before the segment rolls over.
	if s.Transition > s.Duration {
		return fmt.Errorf("regime %q: transition %d exceeds duration %d", s.Regime, s.Transition, s.Duration)
	}
	return nil
}

// Schedule is an ordered sequence of segments. With Repeat set the schedule
// wraps to the first segment when the last one completes; otherwise the last
// segment's parameters hold indefinitely.
type Schedule struct {
	Segments []Segment
	Repeat   bool
}

// NewSchedule validates and returns a schedule.
func NewSchedule(segments []Segment, repeat bool) (Schedule, error) {
	s := Schedule{Segments: segments, Repeat: repeat}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks every segment of the schedule.
func (s Schedule) Validate() error {
	if len(s.Segments) == 0 {
		return fmt.Errorf("schedule has no segments")
	}
	for i, seg := range s.Segments {
		if err := seg.validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

// TotalSteps returns the summed duration of one pass over the schedule.
func (s Schedule) TotalSteps() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}
