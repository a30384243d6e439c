// Package openai provides an adapter for the OpenAI API using the official
// SDK. It implements the extract.Extractor interface: the PDF travels as a
// base64 file content part and the response is constrained to the polymer
// record schema via a strict json_schema response format.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/dreamingbumblebee/biopaper-parser/internal/extract"
	"github.com/dreamingbumblebee/biopaper-parser/internal/observability"
)

const schemaName = "polymer_data_response"

// Provider implements extract.Extractor and extract.Interpreter for OpenAI.
type Provider struct {
	client openai.Client
	name   string
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		name:   "openai",
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Extract sends one document to the model and parses the schema-constrained
// response into polymer records.
func (p *Provider) Extract(ctx context.Context, model string, doc extract.Document) (*extract.Result, error) {
	if len(doc.Bytes) == 0 {
		return nil, &extract.ExtractionError{File: doc.Path, Err: errors.New("document is empty")}
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API",
		observability.String("model", model),
		observability.Int("document_bytes", len(doc.Bytes)),
	)

	params := p.toSDKParams(model, doc)

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, &extract.ExtractionError{File: doc.Path, Err: err}
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return p.toResult(doc.Path, resp)
}

// Interpret asks the model for a natural-language reading of an extracted
// table, used by the markdown report.
func (p *Provider) Interpret(ctx context.Context, model, table string) (string, extract.Usage, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(interpretPromptPrefix + table),
		},
	})
	if err != nil {
		return "", extract.Usage{}, fmt.Errorf("interpret call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", extract.Usage{}, errors.New("interpret response has no choices")
	}

	return resp.Choices[0].Message.Content, toUsage(resp), nil
}

// toSDKParams builds the chat completion parameters for one document.
func (p *Provider) toSDKParams(model string, doc extract.Document) openai.ChatCompletionNewParams {
	encoded := base64.StdEncoding.EncodeToString(doc.Bytes)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			Filename: openai.String(filepath.Base(doc.Path)),
			FileData: openai.String("data:application/pdf;base64," + encoded),
		}),
		openai.TextContentPart(extractionPrompt),
	}

	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        schemaName,
					Description: openai.String("Tabulated polymer sample properties extracted from a paper"),
					Schema:      extract.ResponseSchema(),
					Strict:      openai.Bool(true),
				},
			},
		},
	}
}

// toResult converts the SDK response into extraction records.
func (p *Provider) toResult(path string, resp *openai.ChatCompletion) (*extract.Result, error) {
	if len(resp.Choices) == 0 {
		return nil, &extract.ExtractionError{File: path, Err: errors.New("response has no choices")}
	}

	content := resp.Choices[0].Message.Content

	var parsed extract.Response
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, &extract.ExtractionError{File: path, Err: fmt.Errorf("decode structured response: %w", err)}
	}

	return &extract.Result{
		Records: parsed.Data,
		Usage:   toUsage(resp),
	}, nil
}

// toUsage extracts token counts from the API's usage block. Counts come from
// the provider's own tokenizer, not an approximation.
func toUsage(resp *openai.ChatCompletion) extract.Usage {
	return extract.Usage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		CachedInput:  resp.Usage.PromptTokensDetails.CachedTokens > 0,
	}
}
