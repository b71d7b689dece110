// Package ai provides completion provider clients.
package ai

import (
	"context"

	"github.com/salamraya/iqjan-bot/internal/models"
)

// Options override the configured defaults for a single completion call.
type Options struct {
	Temperature *float32
	MaxTokens   *int
}

// Model is one entry of a provider's model catalog.
type Model struct {
	ID      string
	OwnedBy string
}

// Provider is one completion backend. The credential is supplied per call so
// callers can rotate keys.
type Provider interface {
	Name() string

	// Complete runs one single-turn completion. It is total: transport and
	// API failures come back as a failure-shaped result carrying the
	// user-facing fallback text, never as an error.
	Complete(ctx context.Context, apiKey, prompt, model string, opts *Options) *models.AiResult

	// ListModels returns the provider's model catalog; empty on any failure
	// (logged, not surfaced).
	ListModels(ctx context.Context, apiKey string) []Model

	// IsAvailable reports whether the provider answers at all.
	IsAvailable(ctx context.Context, apiKey string) bool
}
