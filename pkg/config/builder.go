package config

import (
	"time"

	"github.com/shopspring/decimal"

	"MarketGen/pkg/types"
)

// Builder accumulates optional fields and resolves them in one Build call.
type Builder struct {
	cfg GeneratorConfig
}

// NewBuilder returns an empty builder; every unset field is filled by the
// defaulting pass at Build time.
func NewBuilder() *Builder { return &Builder{} }

// StartingPrice sets the first price of the series.
func (b *Builder) StartingPrice(p decimal.Decimal) *Builder {
	b.cfg.StartingPrice = p
	return b
}

// StartingPriceFloat is a convenience wrapper around StartingPrice.
func (b *Builder) StartingPriceFloat(p float64) *Builder {
	return b.StartingPrice(decimal.NewFromFloat(p))
}

// PriceRange sets both price bounds.
func (b *Builder) PriceRange(min, max decimal.Decimal) *Builder {
	b.cfg.MinPrice = min
	b.cfg.MaxPrice = max
	return b
}

// PriceRangeFloat is a convenience wrapper around PriceRange.
func (b *Builder) PriceRangeFloat(min, max float64) *Builder {
	return b.PriceRange(decimal.NewFromFloat(min), decimal.NewFromFloat(max))
}

// Trend sets the direction and strength of the drift term.
func (b *Builder) Trend(dir Direction, strength decimal.Decimal) *Builder {
	b.cfg.TrendDirection = dir
	b.cfg.TrendStrength = strength
	return b
}

// Volatility sets the standard deviation of the random price component.
func (b *Builder) Volatility(v decimal.Decimal) *Builder {
	b.cfg.Volatility = v
	return b
}

// VolatilityFloat is a convenience wrapper around Volatility.
func (b *Builder) VolatilityFloat(v float64) *Builder {
	return b.Volatility(decimal.NewFromFloat(v))
}

// Interval sets the candle period.
func (b *Builder) Interval(iv types.Interval) *Builder {
	b.cfg.Interval = iv
	return b
}

// NumPoints sets the default series length.
func (b *Builder) NumPoints(n int) *Builder {
	b.cfg.NumPoints = n
	return b
}

// Seed pins the random stream for reproducible output.
func (b *Builder) Seed(seed uint64) *Builder {
	b.cfg.Seed = &seed
	return b
}

// Volume sets the base volume and its volatility.
func (b *Builder) Volume(base uint64, volatility float64) *Builder {
	b.cfg.BaseVolume = base
	b.cfg.VolumeVolatility = volatility
	return b
}

// SamplesPerCandle sets how many intra-period samples shape each candle.
func (b *Builder) SamplesPerCandle(n int) *Builder {
	b.cfg.SamplesPerCandle = n
	return b
}

// StartTime stamps the first candle.
func (b *Builder) StartTime(t time.Time) *Builder {
	b.cfg.StartTime = t
	return b
}

// Build resolves defaults and validates the accumulated fields.
func (b *Builder) Build() (GeneratorConfig, error) {
	return Build(b.cfg)
}

// Preset configurations for common scenarios.

// Volatile returns a config sketch for a choppy market.
func Volatile() GeneratorConfig {
	return GeneratorConfig{
		Volatility:       decimal.RequireFromString("0.05"),
		VolumeVolatility: 0.5,
	}
}

// Stable returns a config sketch for a quiet market.
func Stable() GeneratorConfig {
	return GeneratorConfig{
		Volatility:       lowVolatility,
		VolumeVolatility: 0.1,
	}
}

// BullMarket returns a config sketch for a steady uptrend.
func BullMarket() GeneratorConfig {
	return GeneratorConfig{
		TrendDirection: Bullish,
		TrendStrength:  decimal.RequireFromString("0.002"),
		Volatility:     midVolatility,
	}
}

// BearMarket returns a config sketch for a downtrend; bear markets run a
// little hotter on volatility.
func BearMarket() GeneratorConfig {
	return GeneratorConfig{
		TrendDirection: Bearish,
		TrendStrength:  decimal.RequireFromString("-0.002"),
		Volatility:     decimal.RequireFromString("0.03"),
	}
}
