package regime

import "math"

// RollingStats maintains sliding-window statistics over a close-price stream
// for regime detection. Detection is diagnostic, not price state, so the
// window works in float64; exact decimals stay confined to the price path.
type RollingStats struct {
	window  int
	prices  []float64
	returns []float64
}

// NewRollingStats creates a calculator over the given window size.
func NewRollingStats(window int) *RollingStats {
	if window < 2 {
		window = 2
	}
	return &RollingStats{window: window}
}

// Observe feeds the next close price into the window.
func (s *RollingStats) Observe(price float64) {
	if n := len(s.prices); n > 0 && s.prices[n-1] != 0 {
		r := (price - s.prices[n-1]) / s.prices[n-1]
		s.returns = append(s.returns, r)
		if len(s.returns) > s.window {
			s.returns = s.returns[1:]
		}
	}
	s.prices = append(s.prices, price)
	if len(s.prices) > s.window {
		s.prices = s.prices[1:]
	}
}

// Ready reports whether the window holds enough returns for detection: half
// the window size.
func (s *RollingStats) Ready() bool { return len(s.returns) >= s.window/2 }

// Len returns the number of prices currently in the window.
func (s *RollingStats) Len() int { return len(s.prices) }

// MeanReturn returns the average return over the window.
func (s *RollingStats) MeanReturn() float64 {
	if len(s.returns) == 0 {
		return 0
	}
	var sum float64
	for _, r := range s.returns {
		sum += r
	}
	return sum / float64(len(s.returns))
}

// StdDev returns the population standard deviation of windowed returns.
func (s *RollingStats) StdDev() float64 {
	if len(s.returns) < 2 {
		return 0
	}
	mean := s.MeanReturn()
	var sq float64
	for _, r := range s.returns {
		d := r - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(s.returns)))
}

// SMA returns the mean of the last n prices; zero when fewer are held.
func (s *RollingStats) SMA(n int) float64 {
	if n <= 0 || len(s.prices) < n {
		return 0
	}
	var sum float64
	for _, p := range s.prices[len(s.prices)-n:] {
		sum += p
	}
	return sum / float64(n)
}

// Momentum returns the fractional price change from the oldest to the newest
// price in the window.
func (s *RollingStats) Momentum() float64 {
	if len(s.prices) < 2 || s.prices[0] == 0 {
		return 0
	}
	return (s.prices[len(s.prices)-1] - s.prices[0]) / s.prices[0]
}

// MaxDrawdown returns the largest peak-to-trough decline within the window.
func (s *RollingStats) MaxDrawdown() float64 {
	var peak, maxDD float64
	for _, p := range s.prices {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			if dd := (peak - p) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Reset clears the window.
func (s *RollingStats) Reset() {
	s.prices = s.prices[:0]
	s.returns = s.returns[:0]
}
