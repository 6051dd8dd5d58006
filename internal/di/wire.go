//go:build wireinject
// +build wireinject

package di

import (
	"MarketGen/internal/app"
	"MarketGen/pkg/config"
	"MarketGen/pkg/logger"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg config.GeneratorConfig, logCfg *logger.Config) (*app.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideGenerator,
		ProvideApp,
	)
	return &app.App{}, nil
}
