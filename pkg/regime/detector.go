package regime

import (
	"sort"

	"MarketGen/pkg/types"
)

// VolatilityTier classifies the rolling return volatility.
type VolatilityTier string

const (
	TierLow     VolatilityTier = "low"
	TierNormal  VolatilityTier = "normal"
	TierHigh    VolatilityTier = "high"
	TierExtreme VolatilityTier = "extreme"
)

// apply folds the volatility tier into a trend-derived regime: calm tiers
// pass the trend through, high volatility signals uncertainty, extreme
// volatility reads as stress.
func (t VolatilityTier) apply(trend Regime) Regime {
	switch t {
	case TierHigh:
		if trend == Bear {
			return Bear
		}
		return Sideways
	case TierExtreme:
		return Bear
	default:
		return trend
	}
}

// tierCuts are the volatility thresholds between tiers. The defaults
// correspond to the 25th/50th/75th percentiles of a typical return
// distribution and are re-estimated from observed volatility once enough
// history accumulates.
type tierCuts struct {
	low    float64
	normal float64
	high   float64
}

var defaultTierCuts = tierCuts{low: 0.005, normal: 0.01, high: 0.02}

func (c tierCuts) classify(vol float64) VolatilityTier {
	switch {
	case vol < c.low:
		return TierLow
	case vol < c.normal:
		return TierNormal
	case vol < c.high:
		return TierHigh
	default:
		return TierExtreme
	}
}

// Detection is one detector verdict over the observed candle stream.
type Detection struct {
	Regime     Regime
	Tier       VolatilityTier
	Confidence float64
	Volatility float64
	Momentum   float64
}

// Detector classifies the market regime from observed OHLC data: rolling
// return volatility is binned into tiers, momentum and a short/long SMA
// trend pick the direction, and volatility clustering feeds the confidence.
// It is the read side of regime handling; the Controller is the write side.
type Detector struct {
	stats *RollingStats
	vols  []float64
	cuts  tierCuts
	seen  int
	last  *Detection
}

const (
	shortTrendWindow = 5
	longTrendWindow  = 20

	momentumThreshold = 0.05
	trendThreshold    = 0.01
)

// NewDetector creates a detector over the given rolling window.
func NewDetector(window int) *Detector {
	return &Detector{stats: NewRollingStats(window), cuts: defaultTierCuts}
}

// Observe feeds one candle and returns the current detection. The boolean is
// false until the window holds enough data.
func (d *Detector) Observe(c types.Candle) (Detection, bool) {
	d.seen++
	d.stats.Observe(c.Close.InexactFloat64())

	d.vols = append(d.vols, d.stats.StdDev())
	if len(d.vols) > d.stats.window {
		d.vols = d.vols[1:]
	}

	if !d.stats.Ready() {
		return Detection{}, false
	}
	if len(d.vols) >= 20 && d.seen%10 == 0 {
		d.refreshCuts()
	}

	det := d.classify()
	d.last = &det
	return det, true
}

// Last returns the most recent detection, if any.
func (d *Detector) Last() (Detection, bool) {
	if d.last == nil {
		return Detection{}, false
	}
	return *d.last, true
}

// Reset clears all accumulated history and restores the default tier cuts.
func (d *Detector) Reset() {
	d.stats.Reset()
	d.vols = d.vols[:0]
	d.cuts = defaultTierCuts
	d.seen = 0
	d.last = nil
}

func (d *Detector) classify() Detection {
	vol := d.stats.StdDev()
	tier := d.cuts.classify(vol)
	momentum := d.stats.Momentum()
	trend := d.trend()

	var detected Regime
	switch {
	case tier == TierExtreme:
		detected = Bear
	case momentum > momentumThreshold && tier != TierHigh:
		detected = Bull
	case momentum < -momentumThreshold && tier != TierHigh:
		detected = Bear
	default:
		detected = tier.apply(trend)
	}

	confidence := 0.5
	switch tier {
	case TierLow:
		confidence += 0.2
	case TierNormal:
		confidence += 0.1
	case TierHigh:
		confidence -= 0.1
	case TierExtreme:
		confidence -= 0.2
	}
	confidence = (confidence + 0.2*d.clustering()) / 1.2
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return Detection{
		Regime:     detected,
		Tier:       tier,
		Confidence: confidence,
		Volatility: vol,
		Momentum:   momentum,
	}
}

// trend compares short and long simple moving averages; within the threshold
// band the market reads as sideways.
func (d *Detector) trend() Regime {
	if d.stats.Len() < longTrendWindow {
		return Sideways
	}
	long := d.stats.SMA(longTrendWindow)
	if long == 0 {
		return Sideways
	}
	diff := (d.stats.SMA(shortTrendWindow) - long) / long
	switch {
	case diff > trendThreshold:
		return Bull
	case diff < -trendThreshold:
		return Bear
	default:
		return Sideways
	}
}

// clustering measures volatility persistence: the fraction of the last ten
// volatility observations sharing the current tier.
func (d *Detector) clustering() float64 {
	if len(d.vols) < 10 {
		return 0
	}
	current := d.cuts.classify(d.vols[len(d.vols)-1])
	count := 0
	for i := len(d.vols) - 1; i >= 0 && len(d.vols)-i <= 10; i-- {
		if d.cuts.classify(d.vols[i]) != current {
			break
		}
		count++
	}
	return float64(count) / 10
}

// refreshCuts re-estimates the tier thresholds from the observed volatility
// distribution.
func (d *Detector) refreshCuts() {
	sorted := append([]float64(nil), d.vols...)
	sort.Float64s(sorted)
	n := len(sorted)
	d.cuts = tierCuts{
		low:    sorted[n*25/100],
		normal: sorted[n*50/100],
		high:   sorted[n*75/100],
	}
}
