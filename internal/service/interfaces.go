package service

import (
	"context"

	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/models"
)

type PipelineService interface {
	// Process runs one webhook delivery through the full pipeline. A nil
	// error with a skipped result means the delivery carried nothing to
	// answer.
	Process(ctx context.Context, rawPayload []byte) (*ProcessResult, error)
	GetExchanges(ctx context.Context, page, limit int) (*api.ExchangeListResponse, error)
	SetupWebhook(ctx context.Context) error
	GetCircuitBreakerStatus() (state api.HealthResponseCircuitBreakerState, requests uint32, failures uint32)
}

type UsageService interface {
	IncrementUsage(ctx context.Context, credential *models.Credential, usage models.JSONMap) error
	LimitReached(ctx context.Context, credential *models.Credential) (bool, error)
	Stats(ctx context.Context, serviceName string) (*api.UsageStatsResponse, error)
}

type CredentialService interface {
	// Select returns the first usable credential of a service, or
	// ErrNoCredentialAvailable when every key is inactive, unavailable or
	// over its daily cap.
	Select(ctx context.Context, serviceName string) (*models.Credential, error)
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}
