package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder instruments the generation engine with Prometheus.
type Recorder struct {
	candlesGenerated  *prometheus.CounterVec
	ticksGenerated    prometheus.Counter
	lastPrice         prometheus.Gauge
	stepDuration      prometheus.Histogram
	regimeTransitions *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder. Register it at most once
// per process; promauto registers on the default registry.
func New() *Recorder {
	return &Recorder{
		candlesGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgen_candles_generated_total",
				Help: "Total number of candles generated",
			},
			[]string{"interval"},
		),
		ticksGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "marketgen_ticks_generated_total",
				Help: "Total number of ticks generated",
			},
		),
		lastPrice: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "marketgen_last_price",
				Help: "Last generated price",
			},
		),
		stepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "marketgen_step_duration_seconds",
				Help:    "Duration of one generation step in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		regimeTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgen_regime_transitions_total",
				Help: "Total number of regime segment changes",
			},
			[]string{"regime"},
		),
	}
}

// RecordCandle records one generated candle.
func (r *Recorder) RecordCandle(interval string) {
	r.candlesGenerated.WithLabelValues(interval).Inc()
}

// RecordTick records one generated tick.
func (r *Recorder) RecordTick() {
	r.ticksGenerated.Inc()
}

// RecordLastPrice records the most recent price.
func (r *Recorder) RecordLastPrice(price float64) {
	r.lastPrice.Set(price)
}

// RecordStepDuration records how long one generation step took.
func (r *Recorder) RecordStepDuration(seconds float64) {
	r.stepDuration.Observe(seconds)
}

// RecordRegimeTransition records entry into a regime segment.
func (r *Recorder) RecordRegimeTransition(regime string) {
	r.regimeTransitions.WithLabelValues(regime).Inc()
}
