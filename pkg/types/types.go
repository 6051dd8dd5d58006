package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV record produced by the generator. Values are exact
// decimals; binary floats never touch stored prices.
type Candle struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    uint64          `json:"volume"`
}

// Valid reports whether the candle satisfies its structural invariants:
// high >= max(open, close), low <= min(open, close), and all prices positive.
func (c Candle) Valid() bool {
	hi := decimal.Max(c.Open, c.Close)
	lo := decimal.Min(c.Open, c.Close)
	return c.High.GreaterThanOrEqual(hi) &&
		c.Low.LessThanOrEqual(lo) &&
		c.High.GreaterThanOrEqual(c.Low) &&
		c.Low.IsPositive()
}

// Range returns high - low.
func (c Candle) Range() decimal.Decimal { return c.High.Sub(c.Low) }

// Body returns |close - open|.
func (c Candle) Body() decimal.Decimal { return c.Close.Sub(c.Open).Abs() }

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool { return c.Close.GreaterThan(c.Open) }

// Tick is a single simulated trade event. Bid and Ask are nil when no spread
// was generated.
type Tick struct {
	Timestamp time.Time        `json:"timestamp"`
	Price     decimal.Decimal  `json:"price"`
	Volume    uint64           `json:"volume"`
	Bid       *decimal.Decimal `json:"bid,omitempty"`
	Ask       *decimal.Decimal `json:"ask,omitempty"`
}

// Spread returns ask - bid, or false when either side is missing.
func (t Tick) Spread() (decimal.Decimal, bool) {
	if t.Bid == nil || t.Ask == nil {
		return decimal.Decimal{}, false
	}
	return t.Ask.Sub(*t.Bid), true
}
