package series

import (
	"math"

	"github.com/shopspring/decimal"
)

// VolumeModel derives per-candle volume correlated with the magnitude of the
// price move. TypicalMove is the reference change fraction at which the
// correlation term contributes its full weight; 0.02 (a 2% move) is the
// default.
type VolumeModel struct {
	Base        uint64
	Volatility  float64
	Correlation float64
	TypicalMove decimal.Decimal
}

// Volume computes
//
//	base * (1 + correlation * |changeFrac| / typicalMove) * noise
//
// where noise is lognormal with unit mean, exp(sigma*z - sigma^2/2). The
// result is rounded to the nearest integer and floored at 1 so every candle
// carries at least one unit of volume.
func (m VolumeModel) Volume(changeFrac decimal.Decimal, z float64) uint64 {
	frac, _ := changeFrac.Abs().Float64()
	typ, _ := m.TypicalMove.Float64()
	if typ <= 0 {
		typ = 0.02
	}

	scale := 1 + m.Correlation*frac/typ
	noise := math.Exp(m.Volatility*z - m.Volatility*m.Volatility/2)

	v := math.Round(float64(m.Base) * scale * noise)
	if v < 1 {
		return 1
	}
	return uint64(v)
}
