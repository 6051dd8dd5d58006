package series

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketGen/pkg/rng"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStepZeroNoiseZeroDriftHolds(t *testing.T) {
	p := Path{Min: dec("1"), Max: dec("10000"), Dt: 1}
	next := p.Step(dec("100"), decimal.Zero, dec("0.02"), 0)
	assert.True(t, next.Equal(dec("100")), "got %s", next)
}

func TestStepDriftOnly(t *testing.T) {
	p := Path{Min: dec("1"), Max: dec("10000"), Dt: 1}
	// 100 * (1 + 0.005) with no noise term.
	next := p.Step(dec("100"), dec("0.005"), decimal.Zero, 0)
	assert.True(t, next.Equal(dec("100.5")), "got %s", next)
}

func TestStepDtScalesDrift(t *testing.T) {
	p := Path{Min: dec("1"), Max: dec("10000"), Dt: 0.5}
	next := p.Step(dec("100"), dec("0.01"), decimal.Zero, 0)
	assert.True(t, next.Equal(dec("100.5")), "got %s", next)
}

func TestStepClampsToBounds(t *testing.T) {
	p := Path{Min: dec("95"), Max: dec("105"), Dt: 1}

	up := p.Step(dec("100"), dec("0.5"), decimal.Zero, 0)
	assert.True(t, up.Equal(dec("105")), "got %s", up)

	down := p.Step(dec("100"), dec("-0.5"), decimal.Zero, 0)
	assert.True(t, down.Equal(dec("95")), "got %s", down)
}

func TestStepStaysOnEngineScale(t *testing.T) {
	p := Path{Min: dec("1"), Max: dec("10000"), Dt: 1}
	next := p.Step(dec("100"), dec("0.0001234567891"), decimal.Zero, 0)
	assert.LessOrEqual(t, int(-next.Exponent()), rng.PriceScale)
}

func TestSynthesizeBrackets(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := []decimal.Decimal{dec("101"), dec("99"), dec("100.5")}

	c := Synthesize(ts, dec("100"), samples, 5000)

	require.True(t, c.Valid())
	assert.True(t, c.Open.Equal(dec("100")))
	assert.True(t, c.Close.Equal(dec("100.5")))
	assert.True(t, c.High.Equal(dec("101")))
	assert.True(t, c.Low.Equal(dec("99")))
	assert.Equal(t, uint64(5000), c.Volume)
	assert.Equal(t, ts, c.Timestamp)
}

func TestSynthesizeSingleSample(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Synthesize(ts, dec("100"), []decimal.Decimal{dec("102")}, 1)

	require.True(t, c.Valid())
	assert.True(t, c.High.Equal(dec("102")))
	assert.True(t, c.Low.Equal(dec("100")))
}

func TestSynthesizeOpenOutsideSampleRange(t *testing.T) {
	// Gap down: every sample below the open. High must still cover the open.
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Synthesize(ts, dec("110"), []decimal.Decimal{dec("100"), dec("98")}, 1)

	require.True(t, c.Valid())
	assert.True(t, c.High.Equal(dec("110")))
	assert.True(t, c.Low.Equal(dec("98")))
}

func TestSynthesizeEmptyPanics(t *testing.T) {
	assert.Panics(t, func() {
		Synthesize(time.Now(), dec("100"), nil, 1)
	})
}

func TestVolumeNoNoiseNoMove(t *testing.T) {
	m := VolumeModel{Base: 100000, Volatility: 0, Correlation: 0.5, TypicalMove: dec("0.02")}
	assert.Equal(t, uint64(100000), m.Volume(decimal.Zero, 0))
}

func TestVolumeScalesWithMove(t *testing.T) {
	m := VolumeModel{Base: 100000, Volatility: 0, Correlation: 0.5, TypicalMove: dec("0.02")}

	// A typical-sized move contributes its full correlation weight.
	assert.Equal(t, uint64(150000), m.Volume(dec("0.02"), 0))
	// Direction does not matter, only magnitude.
	assert.Equal(t, uint64(150000), m.Volume(dec("-0.02"), 0))
	// Twice the typical move, twice the weight.
	assert.Equal(t, uint64(200000), m.Volume(dec("0.04"), 0))
}

func TestVolumeFloorsAtOne(t *testing.T) {
	m := VolumeModel{Base: 1, Volatility: 2, Correlation: 0, TypicalMove: dec("0.02")}
	// Deeply negative z drives the lognormal noise toward zero.
	assert.Equal(t, uint64(1), m.Volume(decimal.Zero, -10))
}

func TestVolumeLognormalUnitMean(t *testing.T) {
	m := VolumeModel{Base: 100000, Volatility: 0.3, Correlation: 0, TypicalMove: dec("0.02")}
	src := rng.NewSource(42)

	const n = 20000
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(m.Volume(decimal.Zero, src.StdNormal()))
	}
	mean := sum / n
	assert.InDelta(t, 100000, mean, 2500)
}
