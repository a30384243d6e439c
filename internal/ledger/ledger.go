// Package ledger accumulates the monetary cost of extraction requests across
// a batch run. Costs are tracked in total, per model, and per source file, and
// can be persisted as a JSON summary at end of run.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dreamingbumblebee/biopaper-parser/internal/pricing"
)

const tokensPerMillion = 1_000_000.0

// DefaultSummaryFile is the destination used when no summary path is configured.
const DefaultSummaryFile = "cost_summary.json"

// ComputeCost returns the USD cost for a single request. Pure function.
func ComputeCost(record pricing.PriceRecord, inputTokens, outputTokens int, cached bool) float64 {
	inputPrice := record.InputPerMTokens
	if cached {
		inputPrice = record.CachedInputPerMTokens
	}

	inputCost := float64(inputTokens) / tokensPerMillion * inputPrice
	outputCost := float64(outputTokens) / tokensPerMillion * record.OutputPerMTokens

	return inputCost + outputCost
}

// Snapshot is a point-in-time copy of the ledger state.
type Snapshot struct {
	TotalCost   float64            `json:"total_cost"`
	CostByModel map[string]float64 `json:"cost_by_model"`
	CostByFile  map[string]float64 `json:"cost_by_file"`
	Timestamp   string             `json:"timestamp"`
}

// Ledger tracks accumulated request costs. It is append-only: costs are never
// decremented or rolled back. The three aggregates are updated under one lock
// so a logged request is either fully visible or not at all.
type Ledger struct {
	mu          sync.Mutex
	registry    *pricing.Registry
	logger      *zap.Logger
	totalCost   float64
	costByModel map[string]float64
	costByFile  map[string]float64
}

// New creates an empty ledger backed by the given pricing registry.
func New(registry *pricing.Registry, logger *zap.Logger) *Ledger {
	return &Ledger{
		mu:          sync.Mutex{},
		registry:    registry,
		logger:      logger,
		costByModel: make(map[string]float64),
		costByFile:  make(map[string]float64),
	}
}

// LogRequest computes the cost of one request, records it against the total
// and the per-model and per-file aggregates, and returns the incremental cost
// for this call. An unknown model fails without mutating the ledger.
func (l *Ledger) LogRequest(model, filePath string, inputTokens, outputTokens int, cached bool) (float64, error) {
	if inputTokens < 0 || outputTokens < 0 {
		return 0, fmt.Errorf("token counts cannot be negative: input=%d output=%d", inputTokens, outputTokens)
	}

	record, err := l.registry.Lookup(model)
	if err != nil {
		return 0, fmt.Errorf("resolve pricing: %w", err)
	}

	cost := ComputeCost(record, inputTokens, outputTokens, cached)

	l.mu.Lock()
	l.totalCost += cost
	l.costByModel[model] += cost
	l.costByFile[filePath] += cost
	l.mu.Unlock()

	l.logger.Info("request logged",
		zap.String("model", model),
		zap.String("file", filePath),
		zap.Int("input_tokens", inputTokens),
		zap.Int("output_tokens", outputTokens),
		zap.Bool("cached", cached),
		zap.Float64("cost_usd", cost),
	)

	return cost, nil
}

// Summary returns a deep-copied snapshot of the current state. The timestamp
// reflects snapshot creation, not any request time.
func (l *Ledger) Summary() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	byModel := make(map[string]float64, len(l.costByModel))
	for model, cost := range l.costByModel {
		byModel[model] = cost
	}

	byFile := make(map[string]float64, len(l.costByFile))
	for file, cost := range l.costByFile {
		byFile[file] = cost
	}

	return Snapshot{
		TotalCost:   l.totalCost,
		CostByModel: byModel,
		CostByFile:  byFile,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// Persist writes the current summary to path as indented JSON, replacing any
// existing content.
func (l *Ledger) Persist(path string) error {
	if path == "" {
		return errors.New("summary path cannot be empty")
	}

	summary := l.Summary()

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cost summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cost summary: %w", err)
	}

	l.logger.Info("cost summary saved",
		zap.String("path", path),
		zap.Float64("total_cost_usd", summary.TotalCost),
	)

	return nil
}

// Load reads a previously persisted summary from path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read cost summary: %w", err)
	}

	var summary Snapshot
	if err := json.Unmarshal(data, &summary); err != nil {
		return Snapshot{}, fmt.Errorf("decode cost summary: %w", err)
	}

	return summary, nil
}
