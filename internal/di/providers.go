package di

import (
	"fmt"

	"MarketGen/internal/app"
	"MarketGen/pkg/config"
	"MarketGen/pkg/generator"
	"MarketGen/pkg/logger"
	"MarketGen/pkg/metrics"
)

// ProvideLogger creates the structured logger.
func ProvideLogger(cfg *logger.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideGenerator builds the generation engine from the resolved config.
func ProvideGenerator(cfg config.GeneratorConfig, log *logger.Logger, rec *metrics.Recorder) (*generator.Generator, error) {
	gen, err := generator.New(cfg,
		generator.WithLogger(log),
		generator.WithMetrics(rec),
	)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return gen, nil
}

// ProvideApp creates the application.
func ProvideApp(gen *generator.Generator, log *logger.Logger) *app.App {
	return app.New(gen, log)
}
