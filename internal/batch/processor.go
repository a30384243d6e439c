// Package batch drives a sequential extraction run over a set of documents.
// Documents are processed one at a time; a failure for one document never
// aborts the rest of the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dreamingbumblebee/biopaper-parser/internal/export"
	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
	"github.com/dreamingbumblebee/biopaper-parser/internal/history"
	"github.com/dreamingbumblebee/biopaper-parser/internal/ledger"
	"github.com/dreamingbumblebee/biopaper-parser/internal/observability"
	"github.com/dreamingbumblebee/biopaper-parser/internal/pricing"
)

// DefaultReportModel is the tier used for markdown report interpretation.
const DefaultReportModel = "gpt-4.1-nano"

// FileError records a per-document failure surfaced at end of run.
type FileError struct {
	Path string
	Err  error
}

// Options control one batch run.
type Options struct {
	Model        string
	EnableReport bool
	ReportModel  string
	SummaryPath  string
}

// RunResult summarizes one batch run.
type RunResult struct {
	RunID     string
	Extracted []string // documents that produced a results CSV
	Empty     []string // documents that yielded zero records
	Failures  []FileError
	TotalCost float64
}

// Processor orchestrates extraction, cost accounting, and export.
type Processor struct {
	registry    *pricing.Registry
	ledger      *ledger.Ledger
	store       *history.Store
	extractor   extract.Extractor
	interpreter extract.Interpreter
	logger      *zap.Logger
}

// NewProcessor creates a batch processor (DI constructor). store may be nil
// when request history is disabled.
func NewProcessor(
	registry *pricing.Registry,
	led *ledger.Ledger,
	store *history.Store,
	extractor extract.Extractor,
	interpreter extract.Interpreter,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		registry:    registry,
		ledger:      led,
		store:       store,
		extractor:   extractor,
		interpreter: interpreter,
		logger:      logger,
	}
}

// Run processes every document in paths sequentially, then persists the cost
// summary. An unknown model is fatal to the run; anything that goes wrong for
// a single document is captured and the run continues.
func (p *Processor) Run(ctx context.Context, paths []string, opts Options) (*RunResult, error) {
	if len(paths) == 0 {
		return nil, errors.New("no documents to process")
	}

	if _, err := p.registry.Lookup(opts.Model); err != nil {
		return nil, fmt.Errorf("select model: %w", err)
	}

	if opts.ReportModel == "" {
		opts.ReportModel = DefaultReportModel
	}
	if opts.SummaryPath == "" {
		opts.SummaryPath = ledger.DefaultSummaryFile
	}

	result := &RunResult{RunID: uuid.New().String()}

	ctx = observability.WithRunID(ctx, result.RunID)
	ctx = observability.WithModel(ctx, opts.Model)

	p.logger.Info("batch run started",
		zap.String("run_id", result.RunID),
		zap.String("model", opts.Model),
		zap.Int("documents", len(paths)),
	)

	for _, path := range paths {
		p.processDocument(ctx, path, opts, result)
	}

	if err := p.ledger.Persist(opts.SummaryPath); err != nil {
		return result, fmt.Errorf("persist cost summary: %w", err)
	}

	result.TotalCost = p.ledger.Summary().TotalCost

	p.logger.Info("batch run finished",
		zap.String("run_id", result.RunID),
		zap.Int("extracted", len(result.Extracted)),
		zap.Int("empty", len(result.Empty)),
		zap.Int("failed", len(result.Failures)),
		zap.Float64("total_cost_usd", result.TotalCost),
	)

	return result, nil
}

func (p *Processor) processDocument(ctx context.Context, path string, opts Options, result *RunResult) {
	ctx = observability.WithFile(ctx, path)
	logger := observability.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read document", zap.Error(err))
		result.Failures = append(result.Failures, FileError{Path: path, Err: err})
		return
	}

	res, err := p.extractor.Extract(ctx, opts.Model, extract.Document{Path: path, Bytes: data})
	if err != nil {
		logger.Error("extraction failed", zap.Error(err))
		result.Failures = append(result.Failures, FileError{Path: path, Err: err})
		return
	}

	cost := p.logCost(ctx, opts.Model, path, res.Usage)

	csvPath := export.CSVPath(path)
	if err := export.WriteCSV(csvPath, res.Records); err != nil {
		if errors.Is(err, extract.ErrNoData) {
			logger.Warn("no data extracted", zap.Float64("cost_usd", cost))
			result.Empty = append(result.Empty, path)
			return
		}
		logger.Error("failed to write results", zap.Error(err))
		result.Failures = append(result.Failures, FileError{Path: path, Err: err})
		return
	}

	logger.Info("results saved",
		zap.String("csv", csvPath),
		zap.Int("records", len(res.Records)),
		zap.Float64("cost_usd", cost),
	)
	result.Extracted = append(result.Extracted, path)

	if opts.EnableReport {
		if err := p.writeReport(ctx, path, opts.ReportModel, res.Records); err != nil {
			// Report generation is best-effort: the extracted CSV is intact.
			logger.Warn("report generation failed", zap.Error(err))
		}
	}
}

// logCost records the request in the ledger and the history store. Both are
// accounting side channels: failures are logged, not propagated.
func (p *Processor) logCost(ctx context.Context, model, path string, usage extract.Usage) float64 {
	logger := observability.FromContext(ctx)

	cost, err := p.ledger.LogRequest(model, path, usage.InputTokens, usage.OutputTokens, usage.CachedInput)
	if err != nil {
		logger.Warn("failed to log request cost", zap.Error(err))
		return 0
	}

	if p.store != nil {
		rec := history.RequestRecord{
			RunID:        observability.GetRunID(ctx),
			Model:        model,
			FilePath:     path,
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
			Cached:       usage.CachedInput,
			CostUSD:      cost,
			CreatedAt:    time.Now(),
		}
		if err := p.store.Record(ctx, rec); err != nil {
			logger.Warn("failed to record request history", zap.Error(err))
		}
	}

	return cost
}

// writeReport renders the extracted records as a markdown table, asks the
// report model for an interpretation, and writes it next to the CSV.
func (p *Processor) writeReport(ctx context.Context, path, reportModel string, records []extract.PolymerRecord) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Row()
	}
	table := export.MarkdownTable(extract.Header(), rows)

	report, usage, err := p.interpreter.Interpret(ctx, reportModel, table)
	if err != nil {
		return fmt.Errorf("interpret results: %w", err)
	}

	p.logCost(ctx, reportModel, path, usage)

	mdPath := export.MarkdownPath(path)
	if err := os.WriteFile(mdPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	observability.FromContext(ctx).Info("markdown report saved", zap.String("path", mdPath))
	return nil
}
