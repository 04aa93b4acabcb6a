// Package extract turns a free-form trade description into a structured
// trade record using an external text-generation service. The service is
// consumed through the OpenAI-compatible chat-completions API exposed by
// OpenRouter.
package extract

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// NotSpecified is the placeholder for fields the model could not determine.
const NotSpecified = "not specified"

// TradeInfo is the trade record extracted from a description.
type TradeInfo struct {
	Asset    string // ticker, e.g. "BTC/USDT"
	Scenario string // entry scenario label, e.g. "Breakout"
	Date     string // free-form date string
	RawText  string // the description the record was extracted from
}

const systemPrompt = `You are an assistant for a crypto trader. Extract the trade details from the text.

Extract:
1. Asset (ticker) - format: BTC/USDT, ETH/USDT, etc.
2. Scenario - the entry type: Breakout, Retest, Pullback, or another label the trader uses
3. Date - format: DD.MM.YYYY

If a value is not stated explicitly, try to infer it from context.
If it cannot be determined, use "not specified".

Reply with ONLY a valid JSON object, no markdown:
{"asset": "BTC/USDT", "scenario": "Breakout", "date": "03.10.2025"}`

// Config holds the extractor configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/gpt-4o-mini",
		Timeout: 30 * time.Second,
	}
}

// Extractor extracts trade records from free text.
type Extractor struct {
	client *openai.Client
	model  string
	apiKey string
}

// NewExtractor creates a new extractor.
func NewExtractor(cfg *Config) *Extractor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Extractor{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
	}
}

// Extract returns the trade record extracted from text, or nil when no
// record could be produced. Transport failures and unparseable replies both
// reduce to a nil record: the conversation offers a single retry path either
// way. The returned error is reserved for context cancellation.
func (e *Extractor) Extract(ctx context.Context, text string) (*TradeInfo, error) {
	if e.apiKey == "" {
		slog.Error("extraction skipped, no API key configured")
		return nil, nil
	}

	slog.Info("sending description to LLM", "length", len(text))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Extract the trade details from this description:\n\n" + text},
		},
		// A literal zero is dropped by the client's omitempty marshaling;
		// the smallest positive value still selects greedy sampling.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   200,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("LLM request failed", "error", err)
		return nil, nil
	}
	if len(resp.Choices) == 0 {
		slog.Warn("LLM returned no choices")
		return nil, nil
	}

	answer := resp.Choices[0].Message.Content
	slog.Debug("LLM reply", "content", answer)

	info := parseTradeInfo(answer)
	if info == nil {
		return nil, nil
	}
	info.RawText = text
	return info, nil
}
