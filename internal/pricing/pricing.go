// Package pricing holds the static model price table used for cost accounting.
// Prices are USD per one million tokens and must match the published OpenAI
// rates for each tier, since every computed cost derives from them.
package pricing

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownModel indicates the requested model is not in the registry.
var ErrUnknownModel = errors.New("unknown model")

// PriceRecord contains per-model pricing information.
type PriceRecord struct {
	InputPerMTokens       float64 // USD per 1M input tokens
	CachedInputPerMTokens float64 // USD per 1M cached input tokens
	OutputPerMTokens      float64 // USD per 1M output tokens
	Description           string
}

// Registry maintains pricing information for models. It is seeded once at
// construction and exposes no mutation operations.
type Registry struct {
	mu      sync.RWMutex
	pricing map[string]PriceRecord
}

// NewRegistry creates a registry pre-populated with the supported model tiers.
func NewRegistry() *Registry {
	return &Registry{
		mu: sync.RWMutex{},
		pricing: map[string]PriceRecord{
			"gpt-4.1": {
				InputPerMTokens:       2.00,
				CachedInputPerMTokens: 0.50,
				OutputPerMTokens:      8.00,
				Description:           "Smartest model for complex tasks",
			},
			"gpt-4.1-mini": {
				InputPerMTokens:       0.40,
				CachedInputPerMTokens: 0.10,
				OutputPerMTokens:      1.60,
				Description:           "Affordable model balancing speed and intelligence",
			},
			"gpt-4.1-nano": {
				InputPerMTokens:       0.100,
				CachedInputPerMTokens: 0.025,
				OutputPerMTokens:      0.400,
				Description:           "Fastest, most cost-effective model for low-latency tasks",
			},
			"o3": {
				InputPerMTokens:       10.00,
				CachedInputPerMTokens: 2.50,
				OutputPerMTokens:      40.00,
				Description:           "Most powerful reasoning model with leading performance on coding, math, science, and vision",
			},
			"o4-mini": {
				InputPerMTokens:       1.100,
				CachedInputPerMTokens: 0.275,
				OutputPerMTokens:      4.400,
				Description:           "Faster, cost-efficient reasoning model delivering strong performance on math, coding and vision",
			},
		},
	}
}

// Lookup retrieves the price record for a model.
func (r *Registry) Lookup(model string) (PriceRecord, error) {
	if model == "" {
		return PriceRecord{}, errors.New("model cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.pricing[model]
	if !exists {
		return PriceRecord{}, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	return record, nil
}

// Models returns every registered model mapped to its description.
func (r *Registry) Models() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make(map[string]string, len(r.pricing))
	for name, record := range r.pricing {
		models[name] = record.Description
	}

	return models
}
