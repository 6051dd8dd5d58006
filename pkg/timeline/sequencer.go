// Package timeline advances candle timestamps, optionally skipping
// non-trading windows.
package timeline

import "time"

// Mode selects how the sequencer treats non-trading time.
type Mode int

const (
	// Continuous always advances by exactly one interval.
	Continuous Mode = iota
	// WeekdaysOnly jumps over Saturday and Sunday to the next weekday at
	// the same time of day.
	WeekdaysOnly
	// MarketHours additionally skips to the next session open when the
	// advanced timestamp falls outside the trading session.
	MarketHours
)

// Session is a trading window within a day, with Open and Close expressed as
// offsets from local midnight. A timestamp is in session when it lies in
// [Open, Close) on a weekday.
type Session struct {
	Open     time.Duration
	Close    time.Duration
	Location *time.Location
}

// Sequencer stamps successive candles. The skip on a non-trading window
// lands on the next valid instant in one computation, so arbitrarily large
// intervals stay well-defined.
type Sequencer struct {
	mode    Mode
	session Session
}

// NewContinuous returns a sequencer that never skips.
func NewContinuous() *Sequencer { return &Sequencer{mode: Continuous} }

// NewWeekdaysOnly returns a sequencer that skips weekends.
func NewWeekdaysOnly() *Sequencer { return &Sequencer{mode: WeekdaysOnly} }

// NewMarketHours returns a sequencer confined to a daily trading session on
// weekdays. A nil location means UTC.
func NewMarketHours(open, close time.Duration, loc *time.Location) *Sequencer {
	if loc == nil {
		loc = time.UTC
	}
	return &Sequencer{mode: MarketHours, session: Session{Open: open, Close: close, Location: loc}}
}

// Next returns the timestamp following prev under the configured mode.
func (s *Sequencer) Next(prev time.Time, interval time.Duration) time.Time {
	t := prev.Add(interval)
	switch s.mode {
	case WeekdaysOnly:
		return skipWeekend(t)
	case MarketHours:
		return s.snapToSession(t)
	default:
		return t
	}
}

// skipWeekend moves weekend timestamps forward to Monday at the same time of
// day. AddDate keeps the wall clock stable across DST boundaries.
func skipWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// snapToSession returns t unchanged when it falls inside the trading
// session, otherwise the next session open.
func (s *Sequencer) snapToSession(t time.Time) time.Time {
	lt := t.In(s.session.Location)
	midnight := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, s.session.Location)
	offset := lt.Sub(midnight)

	if isWeekday(lt) && offset >= s.session.Open && offset < s.session.Close {
		return t
	}

	// Before today's open on a trading day: snap to today's open.
	if isWeekday(lt) && offset < s.session.Open {
		return midnight.Add(s.session.Open)
	}

	// Otherwise the next trading day's open.
	next := midnight.AddDate(0, 0, 1)
	next = skipWeekend(next)
	return next.Add(s.session.Open)
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
