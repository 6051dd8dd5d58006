package types

import "time"

// Interval is the candle period.
type Interval string

const (
	I1s  Interval = "1s"
	I1m  Interval = "1m"
	I5m  Interval = "5m"
	I15m Interval = "15m"
	I30m Interval = "30m"
	I1h  Interval = "1h"
	I4h  Interval = "4h"
	I1d  Interval = "1d"
)

var intervalDurations = map[Interval]time.Duration{
	I1s:  time.Second,
	I1m:  time.Minute,
	I5m:  5 * time.Minute,
	I15m: 15 * time.Minute,
	I30m: 30 * time.Minute,
	I1h:  time.Hour,
	I4h:  4 * time.Hour,
	I1d:  24 * time.Hour,
}

// IsValidInterval returns true if iv is a supported interval.
func IsValidInterval(iv Interval) bool {
	_, ok := intervalDurations[iv]
	return ok
}

// DefaultInterval returns the default candle period.
func DefaultInterval() Interval { return I1m }

// NormalizeInterval converts a raw string to a valid interval (or default).
func NormalizeInterval(s string) Interval {
	if s == "" {
		return DefaultInterval()
	}
	iv := Interval(s)
	if IsValidInterval(iv) {
		return iv
	}
	return DefaultInterval()
}

// Duration returns the wall-clock length of the interval.
func (iv Interval) Duration() time.Duration {
	if d, ok := intervalDurations[iv]; ok {
		return d
	}
	return time.Minute
}

// Seconds returns the interval length in seconds.
func (iv Interval) Seconds() int64 { return int64(iv.Duration() / time.Second) }

// DayFraction returns the interval length normalized to trading days,
// with one day = 1.0. This is the dt term of the price-path step.
func (iv Interval) DayFraction() float64 {
	return float64(iv.Seconds()) / 86400.0
}
