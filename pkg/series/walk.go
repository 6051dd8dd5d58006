// Package series implements the per-step math of the engine: the random walk
// price path, OHLC synthesis, and the volume model.
package series

import (
	"math"

	"github.com/shopspring/decimal"

	"MarketGen/pkg/rng"
)

var one = decimal.NewFromInt(1)

// Path computes successive prices with a random-walk-with-drift step. Dt is
// the candle period normalized to days (one day = 1.0).
type Path struct {
	Min decimal.Decimal
	Max decimal.Decimal
	Dt  float64
}

// Step returns the price following current:
//
//	next = current * (1 + drift*dt + volatility*sqrt(dt)*z)
//
// The drift and volatility terms are combined in float64, rounded half-even
// to the engine scale, and applied in decimal so rounding error never
// compounds across the series. Prices outside [Min, Max] are clamped to the
// nearest bound; clamping biases the distribution near the bounds and is the
// documented contract, not an accident.
func (p Path) Step(current, drift, volatility decimal.Decimal, z float64) decimal.Decimal {
	driftF, _ := drift.Float64()
	volF, _ := volatility.Float64()

	change := rng.Quantize(driftF*p.Dt + volF*math.Sqrt(p.Dt)*z)
	next := current.Mul(one.Add(change)).RoundBank(rng.PriceScale)

	if next.LessThan(p.Min) {
		return p.Min
	}
	if next.GreaterThan(p.Max) {
		return p.Max
	}
	return next
}
