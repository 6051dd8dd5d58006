package series

import (
	"time"

	"github.com/shopspring/decimal"

	"MarketGen/pkg/types"
)

// Synthesize folds an ordered run of intra-period samples into one candle.
// The open is the previous close (price continuity across candles), the
// close is the last sample, and high/low bracket open, close and every
// sample. The result satisfies the candle invariants for any non-empty
// input; an empty sample run is a programming error and panics.
func Synthesize(ts time.Time, prevClose decimal.Decimal, samples []decimal.Decimal, volume uint64) types.Candle {
	if len(samples) == 0 {
		panic("series: synthesize called with no samples")
	}

	open := prevClose
	close := samples[len(samples)-1]
	high := decimal.Max(open, close)
	low := decimal.Min(open, close)
	for _, s := range samples {
		high = decimal.Max(high, s)
		low = decimal.Min(low, s)
	}

	return types.Candle{
		Timestamp: ts,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}
}
