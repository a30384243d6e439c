package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamingbumblebee/biopaper-parser/internal/batch"
	"github.com/dreamingbumblebee/biopaper-parser/internal/export"
	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
	"github.com/dreamingbumblebee/biopaper-parser/internal/ledger"
	"github.com/dreamingbumblebee/biopaper-parser/internal/pricing"
)

type stubExtractor struct {
	records map[string][]extract.PolymerRecord
	failOn  map[string]error
	usage   extract.Usage
}

func (s *stubExtractor) Extract(_ context.Context, _ string, doc extract.Document) (*extract.Result, error) {
	if err, ok := s.failOn[filepath.Base(doc.Path)]; ok {
		return nil, &extract.ExtractionError{File: doc.Path, Err: err}
	}
	return &extract.Result{
		Records: s.records[filepath.Base(doc.Path)],
		Usage:   s.usage,
	}, nil
}

type stubInterpreter struct {
	calls int
}

func (s *stubInterpreter) Interpret(_ context.Context, _, _ string) (string, extract.Usage, error) {
	s.calls++
	return "# Report\n", extract.Usage{InputTokens: 100, OutputTokens: 50}, nil
}

func record(sampleID string) extract.PolymerRecord {
	return extract.PolymerRecord{SampleID: sampleID, LinkageType: "C-S"}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func writeDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func newProcessor(t *testing.T, ext extract.Extractor, interp extract.Interpreter) (*batch.Processor, *ledger.Ledger) {
	t.Helper()
	registry := pricing.NewRegistry()
	led := ledger.New(registry, zap.NewNop())
	return batch.NewProcessor(registry, led, nil, ext, interp, zap.NewNop()), led
}

func TestProcessor_Run(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	a := writeDoc(t, dir, "a.pdf")
	b := writeDoc(t, dir, "b.pdf")

	ext := &stubExtractor{
		records: map[string][]extract.PolymerRecord{
			"a.pdf": {record("S1"), record("S2")},
			"b.pdf": {record("S3")},
		},
		usage: extract.Usage{InputTokens: 1_000_000, OutputTokens: 500_000},
	}

	proc, _ := newProcessor(t, ext, &stubInterpreter{})

	result, err := proc.Run(context.Background(), []string{a, b}, batch.Options{Model: "gpt-4.1-mini"})
	require.NoError(t, err)

	require.Len(t, result.Extracted, 2)
	require.Empty(t, result.Failures)
	require.Empty(t, result.Empty)
	require.NotEmpty(t, result.RunID)
	require.InDelta(t, 2.40, result.TotalCost, 0.000001) // two docs at 1.20 each

	require.FileExists(t, export.CSVPath(a))
	require.FileExists(t, export.CSVPath(b))

	loaded, err := ledger.Load(ledger.DefaultSummaryFile)
	require.NoError(t, err)
	require.InDelta(t, 2.40, loaded.TotalCost, 0.000001)
	require.InDelta(t, 2.40, loaded.CostByModel["gpt-4.1-mini"], 0.000001)
	require.Len(t, loaded.CostByFile, 2)
}

func TestProcessor_FailureDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	a := writeDoc(t, dir, "a.pdf")
	b := writeDoc(t, dir, "b.pdf")
	missing := filepath.Join(dir, "missing.pdf")

	ext := &stubExtractor{
		records: map[string][]extract.PolymerRecord{
			"b.pdf": {record("S1")},
		},
		failOn: map[string]error{"a.pdf": errors.New("model overloaded")},
		usage:  extract.Usage{InputTokens: 1000, OutputTokens: 100},
	}

	proc, _ := newProcessor(t, ext, &stubInterpreter{})

	result, err := proc.Run(context.Background(), []string{a, missing, b}, batch.Options{Model: "gpt-4.1"})
	require.NoError(t, err)

	require.Len(t, result.Failures, 2)
	require.Equal(t, a, result.Failures[0].Path)
	require.Equal(t, missing, result.Failures[1].Path)
	require.Equal(t, []string{b}, result.Extracted)
	require.FileExists(t, export.CSVPath(b))
}

func TestProcessor_EmptyExtractionIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	a := writeDoc(t, dir, "a.pdf")

	ext := &stubExtractor{
		records: map[string][]extract.PolymerRecord{},
		usage:   extract.Usage{InputTokens: 1000, OutputTokens: 10},
	}

	proc, led := newProcessor(t, ext, &stubInterpreter{})

	result, err := proc.Run(context.Background(), []string{a}, batch.Options{Model: "o4-mini"})
	require.NoError(t, err)

	require.Equal(t, []string{a}, result.Empty)
	require.Empty(t, result.Failures)
	require.NoFileExists(t, export.CSVPath(a))

	// The request still cost money and is still accounted.
	require.Positive(t, led.Summary().TotalCost)
}

func TestProcessor_UnknownModelIsFatal(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	a := writeDoc(t, dir, "a.pdf")

	ext := &stubExtractor{}
	proc, led := newProcessor(t, ext, &stubInterpreter{})

	_, err := proc.Run(context.Background(), []string{a}, batch.Options{Model: "gpt-7"})
	require.ErrorIs(t, err, pricing.ErrUnknownModel)
	require.Zero(t, led.Summary().TotalCost)
}

func TestProcessor_NoDocuments(t *testing.T) {
	proc, _ := newProcessor(t, &stubExtractor{}, &stubInterpreter{})

	_, err := proc.Run(context.Background(), nil, batch.Options{Model: "gpt-4.1"})
	require.Error(t, err)
}

func TestProcessor_ReportGeneration(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	a := writeDoc(t, dir, "a.pdf")

	ext := &stubExtractor{
		records: map[string][]extract.PolymerRecord{
			"a.pdf": {record("S1")},
		},
		usage: extract.Usage{InputTokens: 1000, OutputTokens: 100},
	}
	interp := &stubInterpreter{}

	proc, led := newProcessor(t, ext, interp)

	result, err := proc.Run(context.Background(), []string{a}, batch.Options{
		Model:        "gpt-4.1-mini",
		EnableReport: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Extracted, 1)
	require.Equal(t, 1, interp.calls)

	data, err := os.ReadFile(export.MarkdownPath(a))
	require.NoError(t, err)
	require.Equal(t, "# Report\n", string(data))

	// Interpretation cost is charged against the report model.
	summary := led.Summary()
	require.Contains(t, summary.CostByModel, batch.DefaultReportModel)
}
