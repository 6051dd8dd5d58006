// Package app runs a short demonstration scenario against the generation
// engine: a bull/bear/sideways schedule with smooth transitions.
package app

import (
	"fmt"

	"MarketGen/pkg/generator"
	"MarketGen/pkg/logger"
	"MarketGen/pkg/regime"
)

// App drives one scripted generation run.
type App struct {
	gen *generator.Generator
	log *logger.Logger
}

// New creates the application.
func New(gen *generator.Generator, log *logger.Logger) *App {
	return &App{gen: gen, log: log}
}

// Run generates one pass over a scripted schedule and logs the result.
func (a *App) Run() error {
	schedule, err := regime.NewSchedule([]regime.Segment{
		{Regime: regime.Bull, Duration: 40},
		{Regime: regime.Bear, Duration: 30, Transition: 10},
		{Regime: regime.Sideways, Duration: 30, Transition: 5},
	}, false)
	if err != nil {
		return fmt.Errorf("build schedule: %w", err)
	}
	if err := a.gen.EnableRegimeControl(schedule); err != nil {
		return fmt.Errorf("enable regime control: %w", err)
	}

	count := schedule.TotalSteps()
	candles := a.gen.Series(count)

	first, last := candles[0], candles[len(candles)-1]
	a.log.Info("series generated",
		logger.Int("candles", count),
		logger.String("interval", string(a.gen.Config().Interval)),
		logger.String("first_open", first.Open.String()),
		logger.String("last_close", last.Close.String()),
		logger.Any("regime", a.gen.RegimeInfo().Regime))

	for _, c := range candles {
		a.log.Debug("candle",
			logger.Any("ts", c.Timestamp),
			logger.String("open", c.Open.String()),
			logger.String("high", c.High.String()),
			logger.String("low", c.Low.String()),
			logger.String("close", c.Close.String()),
			logger.Uint64("volume", c.Volume))
	}
	return nil
}
