package main

import (
	"log"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/dreamingbumblebee/biopaper-parser/internal/batch"
	"github.com/dreamingbumblebee/biopaper-parser/internal/config"
	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
	"github.com/dreamingbumblebee/biopaper-parser/internal/history"
	"github.com/dreamingbumblebee/biopaper-parser/internal/ledger"
	"github.com/dreamingbumblebee/biopaper-parser/internal/observability"
	"github.com/dreamingbumblebee/biopaper-parser/internal/pricing"
	"github.com/dreamingbumblebee/biopaper-parser/internal/provider/openai"
)

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(func(logCfg *config.LogConfig) (*zap.Logger, error) {
		return observability.InitLogger(logCfg.Dir)
	}); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Pricing and cost accounting
	if err := container.Provide(pricing.NewRegistry); err != nil {
		log.Fatalf("Failed to provide pricing registry: %v", err)
	}
	if err := container.Provide(ledger.New); err != nil {
		log.Fatalf("Failed to provide ledger: %v", err)
	}

	// Request history (optional)
	if err := container.Provide(func(histCfg *config.HistoryConfig) (*history.Store, error) {
		if !histCfg.Enabled {
			return nil, nil
		}
		return history.Open(histCfg.DBPath)
	}); err != nil {
		log.Fatalf("Failed to provide history store: %v", err)
	}

	// OpenAI Provider
	if err := container.Provide(func(cfg *openai.Config) (*openai.Provider, error) {
		return openai.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide OpenAI provider: %v", err)
	}
	if err := container.Provide(func(p *openai.Provider) extract.Extractor { return p }); err != nil {
		log.Fatalf("Failed to provide extractor: %v", err)
	}
	if err := container.Provide(func(p *openai.Provider) extract.Interpreter { return p }); err != nil {
		log.Fatalf("Failed to provide interpreter: %v", err)
	}

	// Batch driver
	if err := container.Provide(batch.NewProcessor); err != nil {
		log.Fatalf("Failed to provide batch processor: %v", err)
	}

	return container
}
