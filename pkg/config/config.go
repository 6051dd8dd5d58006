package config

import (
	"time"

	"github.com/creasty/defaults"
	"github.com/shopspring/decimal"

	"MarketGen/pkg/types"
)

// Direction of the configured market trend.
type Direction string

const (
	Bullish  Direction = "bullish"
	Bearish  Direction = "bearish"
	Sideways Direction = "sideways"
)

// GeneratorConfig holds every parameter of the generation engine. Build it
// through Build or the fluent Builder; after a successful build the struct is
// treated as immutable.
type GeneratorConfig struct {
	// StartingPrice is the price of the first sample.
	StartingPrice decimal.Decimal `yaml:"starting_price" default:"100" validate:"gt=0"`
	// MinPrice and MaxPrice bound every generated price. When zero they are
	// inferred from StartingPrice during the defaulting pass.
	MinPrice decimal.Decimal `yaml:"min_price"`
	MaxPrice decimal.Decimal `yaml:"max_price"`
	// TrendDirection selects the sign of the drift term.
	TrendDirection Direction `yaml:"trend_direction" default:"sideways" validate:"oneof=bullish bearish sideways"`
	// TrendStrength is the drift magnitude per period, within [-1, 1].
	TrendStrength decimal.Decimal `yaml:"trend_strength" validate:"gte=-1,lte=1"`
	// Volatility is the standard deviation of the random price component.
	// When zero it is inferred from the price magnitude.
	Volatility decimal.Decimal `yaml:"volatility" validate:"gte=0"`
	// Interval is the candle period.
	Interval types.Interval `yaml:"interval" default:"1m" validate:"interval"`
	// NumPoints is the default series length.
	NumPoints int `yaml:"num_points" default:"100" validate:"gt=0"`
	// Seed drives the random stream. Nil means seed 0.
	Seed *uint64 `yaml:"seed"`
	// BaseVolume is the reference per-candle volume.
	BaseVolume uint64 `yaml:"base_volume" default:"100000" validate:"gt=0"`
	// VolumeVolatility scales the lognormal volume noise.
	VolumeVolatility float64 `yaml:"volume_volatility" default:"0.3" validate:"gte=0"`
	// VolumeCorrelation couples volume to the price-change magnitude.
	VolumeCorrelation float64 `yaml:"volume_correlation" default:"0.5" validate:"gte=0,lte=1"`
	// TypicalMove is the reference price-change fraction used by the volume
	// model when scaling the correlation term.
	TypicalMove decimal.Decimal `yaml:"typical_move" default:"0.02" validate:"gt=0"`
	// SamplesPerCandle is the number of intra-period price samples folded
	// into each candle.
	SamplesPerCandle int `yaml:"samples_per_candle" default:"1" validate:"gt=0"`
	// StartTime stamps the first candle. Zero defaults to a fixed instant so
	// that identical configs reproduce identical series.
	StartTime time.Time `yaml:"start_time"`
}

var (
	lowPriceTier  = decimal.NewFromInt(10)
	highPriceTier = decimal.NewFromInt(10000)
	boundsTier    = decimal.NewFromInt(1000)

	lowVolatility     = decimal.RequireFromString("0.005")
	midVolatility     = decimal.RequireFromString("0.02")
	highVolatility    = decimal.RequireFromString("0.05")
	defaultTrendStep  = decimal.RequireFromString("0.0001")
	minBoundFraction  = decimal.RequireFromString("0.01")
	halfStartingPrice = decimal.RequireFromString("0.5")
)

// defaultStartTime keeps unseeded runs reproducible; callers that want
// wall-clock stamps set StartTime or use Generator.SetTimestamp.
var defaultStartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ApplyDefaults fills omitted fields: static defaults first, then inference
// keyed on already-set values. It never touches fields the caller set.
func (c *GeneratorConfig) ApplyDefaults() error {
	if err := defaults.Set(c); err != nil {
		return err
	}

	// Price bounds derived from the starting price.
	if c.MinPrice.IsZero() {
		if c.StartingPrice.GreaterThan(boundsTier) {
			c.MinPrice = c.StartingPrice.Mul(minBoundFraction)
		} else {
			c.MinPrice = decimal.NewFromInt(1)
		}
		if c.MinPrice.GreaterThanOrEqual(c.StartingPrice) {
			c.MinPrice = c.StartingPrice.Mul(halfStartingPrice)
		}
	}
	if c.MaxPrice.IsZero() {
		c.MaxPrice = c.StartingPrice.Mul(decimal.NewFromInt(100))
	}

	// Volatility tier inferred from price magnitude: high-priced instruments
	// move harder, low-priced ones are quieter.
	if c.Volatility.IsZero() {
		switch {
		case c.StartingPrice.GreaterThan(highPriceTier):
			c.Volatility = highVolatility
		case c.StartingPrice.LessThan(lowPriceTier):
			c.Volatility = lowVolatility
		default:
			c.Volatility = midVolatility
		}
	}

	// Trend strength sign follows the direction when only the direction was
	// given.
	if c.TrendStrength.IsZero() {
		switch c.TrendDirection {
		case Bullish:
			c.TrendStrength = defaultTrendStep
		case Bearish:
			c.TrendStrength = defaultTrendStep.Neg()
		}
	}

	if c.StartTime.IsZero() {
		c.StartTime = defaultStartTime
	}
	return nil
}

// Drift returns the signed drift per period under the configured trend.
func (c *GeneratorConfig) Drift() decimal.Decimal {
	switch c.TrendDirection {
	case Bullish:
		return c.TrendStrength.Abs()
	case Bearish:
		return c.TrendStrength.Abs().Neg()
	default:
		return decimal.Zero
	}
}

// SeedValue returns the configured seed, or zero when unset.
func (c *GeneratorConfig) SeedValue() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// Build resolves defaults and validates the result. The returned config is
// fully resolved; the input is not modified.
func Build(c GeneratorConfig) (GeneratorConfig, error) {
	if err := c.ApplyDefaults(); err != nil {
		return GeneratorConfig{}, err
	}
	if err := c.Validate(); err != nil {
		return GeneratorConfig{}, err
	}
	return c, nil
}
