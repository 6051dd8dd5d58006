package main

import (
	"log"
	"os"

	"MarketGen/internal/di"
	"MarketGen/pkg/config"
	"MarketGen/pkg/logger"
)

func main() {
	seed := uint64(42)
	cfg := config.BullMarket()
	cfg.Seed = &seed

	app, err := di.InitializeApp(cfg, &logger.Config{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
