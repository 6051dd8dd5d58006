package regime

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegimeDefaults(t *testing.T) {
	bull := Bull.Params()
	assert.True(t, bull.Drift.Equal(dec("0.005")))
	assert.True(t, bull.Volatility.Equal(dec("0.015")))

	bear := Bear.Params()
	assert.True(t, bear.Drift.Equal(dec("-0.007")))
	assert.True(t, bear.Volatility.Equal(dec("0.025")))

	side := Sideways.Params()
	assert.True(t, side.Drift.IsZero())
	assert.True(t, side.Volatility.Equal(dec("0.010")))
}

func TestLerpEndpoints(t *testing.T) {
	a := Bull.Params()
	b := Bear.Params()

	at0 := Lerp(a, b, decimal.Zero)
	assert.True(t, at0.Drift.Equal(a.Drift))
	assert.True(t, at0.Volatility.Equal(a.Volatility))

	at1 := Lerp(a, b, decimal.NewFromInt(1))
	assert.True(t, at1.Drift.Equal(b.Drift))
	assert.True(t, at1.Volatility.Equal(b.Volatility))
}

func TestLerpMidpoint(t *testing.T) {
	a := Params{Drift: dec("0.005"), Volatility: dec("0.015")}
	b := Params{Drift: dec("-0.007"), Volatility: dec("0.025")}

	mid := Lerp(a, b, dec("0.5"))
	assert.True(t, mid.Drift.Equal(dec("-0.001")), "got %s", mid.Drift)
	assert.True(t, mid.Volatility.Equal(dec("0.020")), "got %s", mid.Volatility)
}

func TestScheduleValidation(t *testing.T) {
	_, err := NewSchedule(nil, false)
	require.Error(t, err)

	_, err = NewSchedule([]Segment{{Regime: "sideways-ish", Duration: 10}}, false)
	require.ErrorContains(t, err, "unknown regime")

	_, err = NewSchedule([]Segment{{Regime: Bull, Duration: 0}}, false)
	require.ErrorContains(t, err, "duration")

	_, err = NewSchedule([]Segment{{Regime: Bull, Duration: 10, Transition: -1}}, false)
	require.ErrorContains(t, err, "transition")

	// A transition longer than its segment could never finish interpolating
	// before the next rollover truncated it.
	_, err = NewSchedule([]Segment{{Regime: Bull, Duration: 10, Transition: 11}}, false)
	require.ErrorContains(t, err, "exceeds duration")

	s, err := NewSchedule([]Segment{{Regime: Bull, Duration: 10, Transition: 10}}, false)
	require.NoError(t, err)
	assert.Equal(t, 10, s.TotalSteps())
}

func TestControllerIdleUsesStaticParams(t *testing.T) {
	static := Params{Drift: dec("0.001"), Volatility: dec("0.02")}
	c := NewController(static)

	assert.Equal(t, StateIdle, c.State())
	p := c.Step()
	assert.True(t, p.Drift.Equal(static.Drift))
	assert.True(t, p.Volatility.Equal(static.Volatility))
}

func TestControllerScenario(t *testing.T) {
	// Two segments: ten steps of bull, then ten of bear entered through a
	// five-step interpolation. Boundaries land at exact step indices and the
	// interpolating steps count toward the bear segment's duration.
	s, err := NewSchedule([]Segment{
		{Regime: Bull, Duration: 10},
		{Regime: Bear, Duration: 10, Transition: 5},
	}, false)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	bull := Bull.Params()
	bear := Bear.Params()

	for step := 0; step < 10; step++ {
		p := c.Step()
		assert.True(t, p.Drift.Equal(bull.Drift), "step %d drift %s", step, p.Drift)
		assert.True(t, p.Volatility.Equal(bull.Volatility), "step %d", step)
	}

	// Step 10: first interpolation step, fraction 1/5.
	p := c.Step()
	assert.Equal(t, StateTransitioning, c.State())
	assert.True(t, p.Drift.Equal(dec("0.0026")), "got %s", p.Drift)
	assert.True(t, p.Volatility.Equal(dec("0.017")), "got %s", p.Volatility)

	// Steps 11..13: fractions 2/5 .. 4/5.
	for i, want := range []struct{ drift, vol string }{
		{"0.0002", "0.019"},
		{"-0.0022", "0.021"},
		{"-0.0046", "0.023"},
	} {
		p = c.Step()
		assert.True(t, p.Drift.Equal(dec(want.drift)), "transition step %d drift %s", i+2, p.Drift)
		assert.True(t, p.Volatility.Equal(dec(want.vol)), "transition step %d vol %s", i+2, p.Volatility)
	}

	// Step 14 snaps exactly onto the bear parameters.
	p = c.Step()
	assert.True(t, p.Drift.Equal(bear.Drift), "got %s", p.Drift)
	assert.True(t, p.Volatility.Equal(bear.Volatility))
	assert.Equal(t, StateActive, c.State())

	for step := 15; step < 20; step++ {
		p = c.Step()
		assert.True(t, p.Drift.Equal(bear.Drift), "step %d", step)
	}
}

func TestControllerHoldsAfterExhaustion(t *testing.T) {
	s, err := NewSchedule([]Segment{{Regime: Bull, Duration: 3}}, false)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	for i := 0; i < 3; i++ {
		c.Step()
	}
	assert.False(t, c.Info().Held)

	// Past the end of a non-repeating schedule: the last parameters hold.
	bull := Bull.Params()
	for i := 0; i < 5; i++ {
		p := c.Step()
		assert.True(t, p.Drift.Equal(bull.Drift))
	}
	assert.True(t, c.Info().Held)
	assert.Equal(t, StateActive, c.State())
}

func TestControllerRepeatWraps(t *testing.T) {
	s, err := NewSchedule([]Segment{
		{Regime: Bull, Duration: 2},
		{Regime: Bear, Duration: 2},
	}, true)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	bull := Bull.Params()
	bear := Bear.Params()
	want := []decimal.Decimal{
		bull.Drift, bull.Drift, bear.Drift, bear.Drift,
		bull.Drift, bull.Drift, bear.Drift, bear.Drift,
	}
	for i, w := range want {
		p := c.Step()
		assert.True(t, p.Drift.Equal(w), "step %d drift %s", i, p.Drift)
	}
	assert.False(t, c.Info().Held)
}

func TestControllerForce(t *testing.T) {
	s, err := NewSchedule([]Segment{
		{Regime: Bull, Duration: 10},
		{Regime: Bear, Duration: 10, Transition: 5},
	}, false)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	// Walk into the transition, then force: interpolation is cancelled and
	// the forced segment's parameters apply in full on the next step.
	for i := 0; i < 11; i++ {
		c.Step()
	}
	require.Equal(t, StateTransitioning, c.State())

	require.NoError(t, c.Force(1))
	assert.Equal(t, StateActive, c.State())

	p := c.Step()
	assert.True(t, p.Drift.Equal(Bear.Params().Drift))

	assert.Error(t, c.Force(-1))
	assert.Error(t, c.Force(2))
}

func TestControllerForceRequiresSchedule(t *testing.T) {
	c := NewController(Params{})
	assert.Error(t, c.Force(0))
}

func TestControllerDisable(t *testing.T) {
	s, err := NewSchedule([]Segment{{Regime: Bear, Duration: 5}}, false)
	require.NoError(t, err)

	static := Params{Drift: dec("0.003"), Volatility: dec("0.01")}
	c := NewController(static)
	require.NoError(t, c.Enable(s))
	c.Step()

	c.Disable()
	assert.Equal(t, StateIdle, c.State())
	p := c.Step()
	assert.True(t, p.Drift.Equal(static.Drift))
}

func TestControllerSegmentOverrides(t *testing.T) {
	custom := Params{Drift: dec("0.02"), Volatility: dec("0.05")}
	s, err := NewSchedule([]Segment{
		{Regime: Bull, Duration: 2, Params: &custom},
	}, false)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	p := c.Step()
	assert.True(t, p.Drift.Equal(custom.Drift))
	assert.True(t, p.Volatility.Equal(custom.Volatility))
}

func TestControllerInfo(t *testing.T) {
	s, err := NewSchedule([]Segment{
		{Regime: Bull, Duration: 3},
		{Regime: Sideways, Duration: 3},
	}, false)
	require.NoError(t, err)

	c := NewController(Params{})
	require.NoError(t, c.Enable(s))

	for i := 0; i < 4; i++ {
		c.Step()
	}

	info := c.Info()
	assert.Equal(t, StateActive, info.State)
	assert.Equal(t, Sideways, info.Regime)
	assert.Equal(t, 1, info.SegmentIndex)
	assert.Equal(t, 4, info.TotalSteps)
}

func TestParseSchedule(t *testing.T) {
	doc := []byte(`
repeat: true
segments:
  - regime: bull
    duration: 100
  - regime: bear
    duration: 50
    transition: 10
    drift: -0.01
  - regime: sideways
    duration: 25
    volatility: 0.03
`)
	s, err := ParseSchedule(doc)
	require.NoError(t, err)
	assert.True(t, s.Repeat)
	require.Len(t, s.Segments, 3)
	assert.Equal(t, 175, s.TotalSteps())

	// Partial overrides keep the regime default for the missing half.
	bear := s.Segments[1]
	require.NotNil(t, bear.Params)
	assert.True(t, bear.Params.Drift.Equal(dec("-0.01")))
	assert.True(t, bear.Params.Volatility.Equal(Bear.Params().Volatility))

	side := s.Segments[2]
	require.NotNil(t, side.Params)
	assert.True(t, side.Params.Drift.IsZero())
	assert.True(t, side.Params.Volatility.Equal(dec("0.03")))

	assert.Nil(t, s.Segments[0].Params)
}

func TestParseScheduleRejectsBadDocs(t *testing.T) {
	_, err := ParseSchedule([]byte(`segments: [`))
	assert.Error(t, err)

	_, err = ParseSchedule([]byte("segments:\n  - regime: crab\n    duration: 5\n"))
	assert.ErrorContains(t, err, "unknown regime")
}
