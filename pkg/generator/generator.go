// Package generator composes the random source, price path, candle
// synthesis, volume model, timestamp sequencer and regime controller into
// the facade external consumers call.
package generator

import (
	"time"

	"github.com/shopspring/decimal"

	"MarketGen/pkg/config"
	"MarketGen/pkg/logger"
	"MarketGen/pkg/metrics"
	"MarketGen/pkg/regime"
	"MarketGen/pkg/rng"
	"MarketGen/pkg/series"
	"MarketGen/pkg/timeline"
	"MarketGen/pkg/types"
)

// halfSpread is half of the 0.1% bid/ask spread applied to ticks.
var halfSpread = decimal.RequireFromString("0.0005")

const tickStep = time.Second

// detectionWindow is the rolling window, in candles, of the regime detector.
const detectionWindow = 20

// Generator owns all mutable generation state: the current price, the random
// stream position and the regime cursor. One logical owner per instance; it
// is not safe for unsynchronized concurrent use. Callers generating several
// symbols hold one Generator per symbol.
type Generator struct {
	cfg config.GeneratorConfig

	src      *rng.Source
	path     series.Path
	tickPath series.Path
	vol      series.VolumeModel
	seq      *timeline.Sequencer
	ctrl     *regime.Controller
	det      *regime.Detector

	price decimal.Decimal
	ts    time.Time

	lastRegime   regime.Regime
	lastDetected regime.Regime

	log *logger.Logger
	rec *metrics.Recorder
}

// Option configures optional collaborators of a Generator.
type Option func(*Generator)

// WithLogger injects a structured logger. Without it the generator is
// silent.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithMetrics injects a Prometheus recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(g *Generator) { g.rec = r }
}

// WithSequencer overrides the timestamp sequencer; the default advances
// continuously.
func WithSequencer(s *timeline.Sequencer) Option {
	return func(g *Generator) { g.seq = s }
}

// New resolves and validates the config, then assembles a generator. The
// returned instance owns its random stream; nothing is shared or global.
func New(cfg config.GeneratorConfig, opts ...Option) (*Generator, error) {
	resolved, err := config.Build(cfg)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg: resolved,
		src: rng.NewSource(resolved.SeedValue()),
		path: series.Path{
			Min: resolved.MinPrice,
			Max: resolved.MaxPrice,
			Dt:  resolved.Interval.DayFraction(),
		},
		tickPath: series.Path{
			Min: resolved.MinPrice,
			Max: resolved.MaxPrice,
			Dt:  types.I1s.DayFraction(),
		},
		vol: series.VolumeModel{
			Base:        resolved.BaseVolume,
			Volatility:  resolved.VolumeVolatility,
			Correlation: resolved.VolumeCorrelation,
			TypicalMove: resolved.TypicalMove,
		},
		seq:   timeline.NewContinuous(),
		ctrl:  regime.NewController(regime.Params{Drift: resolved.Drift(), Volatility: resolved.Volatility}),
		det:   regime.NewDetector(detectionWindow),
		price: resolved.StartingPrice,
		ts:    resolved.StartTime,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the fully resolved configuration. The static fields never
// change after construction; regime control only overrides the active
// parameters per step.
func (g *Generator) Config() config.GeneratorConfig { return g.cfg }

// CurrentPrice returns the walk's current price.
func (g *Generator) CurrentPrice() decimal.Decimal { return g.price }

// NextCandle advances the engine one period and returns the candle.
func (g *Generator) NextCandle() types.Candle {
	start := time.Now()
	params := g.ctrl.Step()
	g.observeRegime()

	open := g.price
	samples := make([]decimal.Decimal, g.cfg.SamplesPerCandle)
	for i := range samples {
		g.price = g.path.Step(g.price, params.Drift, params.Volatility, g.src.StdNormal())
		samples[i] = g.price
	}

	change := g.price.Sub(open).Div(open)
	volume := g.vol.Volume(change, g.src.StdNormal())

	candle := series.Synthesize(g.ts, open, samples, volume)
	if !candle.Valid() {
		// Invariants are enforced constructively; a violation here is a bug,
		// not a recoverable condition.
		panic("generator: synthesized candle violates OHLC invariants")
	}
	g.ts = g.seq.Next(g.ts, g.cfg.Interval.Duration())
	g.observeDetection(candle)

	if g.rec != nil {
		g.rec.RecordCandle(string(g.cfg.Interval))
		g.rec.RecordLastPrice(candle.Close.InexactFloat64())
		g.rec.RecordStepDuration(time.Since(start).Seconds())
	}
	return candle
}

// Series generates count candles in order.
func (g *Generator) Series(count int) []types.Candle {
	candles := make([]types.Candle, 0, count)
	for i := 0; i < count; i++ {
		candles = append(candles, g.NextCandle())
	}
	return candles
}

// NextTick advances the engine one second and returns a trade event with a
// 0.1% bid/ask spread around the price.
func (g *Generator) NextTick() types.Tick {
	params := g.ctrl.Step()
	g.observeRegime()

	prev := g.price
	g.price = g.tickPath.Step(g.price, params.Drift, params.Volatility, g.src.StdNormal())

	change := g.price.Sub(prev).Div(prev)
	volume := g.vol.Volume(change, g.src.StdNormal())

	half := g.price.Mul(halfSpread).RoundBank(rng.PriceScale)
	bid := g.price.Sub(half)
	ask := g.price.Add(half)

	tick := types.Tick{
		Timestamp: g.ts,
		Price:     g.price,
		Volume:    volume,
		Bid:       &bid,
		Ask:       &ask,
	}
	g.ts = g.ts.Add(tickStep)

	if g.rec != nil {
		g.rec.RecordTick()
		g.rec.RecordLastPrice(g.price.InexactFloat64())
	}
	return tick
}

// Ticks generates count ticks in order.
func (g *Generator) Ticks(count int) []types.Tick {
	ticks := make([]types.Tick, 0, count)
	for i := 0; i < count; i++ {
		ticks = append(ticks, g.NextTick())
	}
	return ticks
}

// EnableRegimeControl installs a validated schedule; the first segment's
// parameters take effect on the next step.
func (g *Generator) EnableRegimeControl(s regime.Schedule) error {
	if err := g.ctrl.Enable(s); err != nil {
		return err
	}
	g.lastRegime = s.Segments[0].Regime
	g.log.Info("regime control enabled",
		logger.Int("segments", len(s.Segments)),
		logger.Bool("repeat", s.Repeat))
	return nil
}

// DisableRegimeControl returns the engine to the static config parameters.
func (g *Generator) DisableRegimeControl() {
	g.ctrl.Disable()
	g.lastRegime = ""
	g.log.Info("regime control disabled")
}

// ForceRegime cancels any in-flight transition and jumps to the indexed
// segment immediately.
func (g *Generator) ForceRegime(index int) error {
	if err := g.ctrl.Force(index); err != nil {
		return err
	}
	g.log.Info("regime forced", logger.Int("segment", index))
	return nil
}

// RegimeInfo reports the controller's position in its schedule.
func (g *Generator) RegimeInfo() regime.Info { return g.ctrl.Info() }

// DetectedRegime returns the detector's latest verdict over the generated
// candle stream. The boolean is false until enough candles have been
// generated to fill the detection window. Detection is read-only: it never
// feeds back into the price path or consumes the random stream.
func (g *Generator) DetectedRegime() (regime.Detection, bool) {
	return g.det.Last()
}

// SetSeed replaces the random stream. The current price is untouched, so the
// series stays continuous across the seed change; call Reset to start over.
func (g *Generator) SetSeed(seed uint64) {
	g.src = rng.NewSource(seed)
	g.log.Debug("random stream replaced", logger.Uint64("seed", seed))
}

// SetTimestamp moves the clock; the next candle or tick is stamped t.
func (g *Generator) SetTimestamp(t time.Time) { g.ts = t }

// Reset reinitializes the walk to the starting price, the clock to the start
// time, and the random stream to a fresh one from the configured seed.
func (g *Generator) Reset() {
	g.price = g.cfg.StartingPrice
	g.ts = g.cfg.StartTime
	g.src = rng.NewSource(g.cfg.SeedValue())
	g.det.Reset()
	g.lastDetected = ""
	g.log.Debug("generator reset")
}

// observeDetection feeds the detector and logs detected regime changes.
func (g *Generator) observeDetection(c types.Candle) {
	det, ok := g.det.Observe(c)
	if !ok || det.Regime == g.lastDetected {
		return
	}
	g.lastDetected = det.Regime
	g.log.Debug("regime detected",
		logger.String("regime", string(det.Regime)),
		logger.String("tier", string(det.Tier)),
		logger.Any("confidence", det.Confidence))
}

// observeRegime logs and counts regime segment changes.
func (g *Generator) observeRegime() {
	info := g.ctrl.Info()
	if info.State == regime.StateIdle || info.Regime == g.lastRegime {
		return
	}
	g.lastRegime = info.Regime
	if g.rec != nil {
		g.rec.RecordRegimeTransition(string(info.Regime))
	}
	g.log.Debug("regime segment entered",
		logger.String("regime", string(info.Regime)),
		logger.Int("segment", info.SegmentIndex))
}
