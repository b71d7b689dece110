package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/models"
)

const openRouterProviderName = "openrouter"

// OpenRouterClient talks to OpenRouter through its OpenAI-compatible API.
type OpenRouterClient struct {
	cfg        *config.AiConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenRouterClient creates an OpenRouter provider client.
func NewOpenRouterClient(cfg *config.AiConfig, logger *zap.Logger) *OpenRouterClient {
	return &OpenRouterClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Transport: &attributionTransport{
				base:    http.DefaultTransport,
				referer: cfg.AppURL,
				title:   cfg.AppName,
			},
		},
		logger: logger,
	}
}

func (c *OpenRouterClient) Name() string {
	return openRouterProviderName
}

// clientFor builds a go-openai client bound to one API key. Keys rotate per
// call, so the client itself is throwaway; the HTTP client is shared.
func (c *OpenRouterClient) clientFor(apiKey string) *openai.Client {
	conf := openai.DefaultConfig(apiKey)
	conf.BaseURL = c.cfg.BaseURL
	conf.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(conf)
}

// Complete runs one single-turn chat completion. Failures of any kind fold
// into a failure-shaped result with the localized fallback reply so the
// pipeline always has something to show the user.
func (c *OpenRouterClient) Complete(ctx context.Context, apiKey, prompt, model string, opts *Options) *models.AiResult {
	if model == "" {
		model = c.cfg.DefaultModel
	}

	temperature := c.cfg.Temperature
	maxTokens := c.cfg.MaxTokens
	if opts != nil {
		if opts.Temperature != nil {
			temperature = *opts.Temperature
		}
		if opts.MaxTokens != nil {
			maxTokens = *opts.MaxTokens
		}
	}

	resp, err := c.clientFor(apiKey).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		detail := extractErrorDetail(err)
		c.logger.Error("OpenRouter completion failed",
			zap.String("model", model),
			zap.String("detail", detail))

		return &models.AiResult{
			Success:  false,
			Response: c.cfg.FallbackReply,
			Usage:    models.JSONMap{},
			Model:    model,
			Error:    detail,
		}
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &models.AiResult{
		Success:  true,
		Response: content,
		Usage: models.JSONMap{
			"prompt_tokens":     resp.Usage.PromptTokens,
			"completion_tokens": resp.Usage.CompletionTokens,
			"total_tokens":      resp.Usage.TotalTokens,
		},
		Model: model,
	}
}

// ListModels fetches the model catalog. Any failure is logged and reported
// as an empty catalog.
func (c *OpenRouterClient) ListModels(ctx context.Context, apiKey string) []Model {
	resp, err := c.clientFor(apiKey).ListModels(ctx)
	if err != nil {
		c.logger.Error("OpenRouter model listing failed",
			zap.String("detail", extractErrorDetail(err)))
		return nil
	}

	catalog := make([]Model, 0, len(resp.Models))
	for _, m := range resp.Models {
		catalog = append(catalog, Model{ID: m.ID, OwnedBy: m.OwnedBy})
	}

	return catalog
}

// IsAvailable reports whether the provider answered the model listing.
func (c *OpenRouterClient) IsAvailable(ctx context.Context, apiKey string) bool {
	return len(c.ListModels(ctx, apiKey)) > 0
}

// extractErrorDetail pulls the structured message out of an API error when
// there is one, falling back to the transport error text.
func extractErrorDetail(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("completion request failed with status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("completion request failed with status %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}

	return fmt.Sprintf("completion request failed: %v", err)
}

// attributionTransport attaches the attribution headers OpenRouter expects
// on every request.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if t.referer != "" {
		cloned.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		cloned.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(cloned)
}
