// Package extract defines the document extraction contract: the static
// polymer record schema, the extractor interface implemented by provider
// adapters, and the error kinds the batch driver distinguishes.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoData indicates the model returned a schema-valid but empty result set.
// Non-fatal: the document simply yielded no rows.
var ErrNoData = errors.New("no data extracted")

// ExtractionError wraps a remote-call or parse failure for one document.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Document is one PDF to extract from.
type Document struct {
	Path  string
	Bytes []byte
}

// Usage carries the token counts reported by the provider for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	// CachedInput is true when the prompt was served from the provider's
	// prompt cache, which bills at the cached-input rate.
	CachedInput bool
}

// Result is the outcome of extracting one document.
type Result struct {
	Records []PolymerRecord
	Usage   Usage
}

// Extractor sends a document to a model and returns structured records.
type Extractor interface {
	// Extract blocks until the remote call completes or ctx expires.
	Extract(ctx context.Context, model string, doc Document) (*Result, error)
}

// Interpreter renders a natural-language reading of an extracted table.
type Interpreter interface {
	Interpret(ctx context.Context, model, table string) (string, Usage, error)
}
