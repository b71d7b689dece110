package repository

import (
	"context"

	"github.com/salamraya/iqjan-bot/internal/models"
)

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	// WithinTx runs fn against a repository bound to one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(Repository) error) error

	Credentials() CredentialRepository
	Exchanges() ExchangeRepository
	Users() UserRepository
	Groups() GroupRepository
	Services() AiServiceRepository
}

// CredentialRepository interface defines API key operations.
type CredentialRepository interface {
	// GetAvailable returns active and available credentials of a service,
	// highest priority first, insertion order on ties.
	GetAvailable(ctx context.Context, serviceName string) ([]*models.Credential, error)
	List(ctx context.Context, serviceName string) ([]*models.Credential, error)
	// IncrementUsage bumps both usage counters in one atomic statement and
	// merges stats into usage_stats (incoming keys overwrite existing ones).
	IncrementUsage(ctx context.Context, id int64, stats models.JSONMap) error
	ResetDailyUsage(ctx context.Context, id int64) error
}

// ExchangeRepository interface defines persisted message operations.
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *models.Exchange) (int64, error)
	// Finalize records the terminal state: exactly one of response and
	// processingError must be non-nil, and processed_at is stamped.
	Finalize(ctx context.Context, id int64, response *string, usage models.JSONMap, model string, processingError *string) error
	GetProcessed(ctx context.Context, offset, limit int) ([]*models.Exchange, error)
	CountProcessed(ctx context.Context) (int64, error)
}

// UserRepository interface defines sender identity operations.
type UserRepository interface {
	// Upsert finds or creates the user keyed by (external_id, provider) and
	// refreshes the mutable profile fields on every call.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
}

// GroupRepository interface defines group identity operations.
type GroupRepository interface {
	Upsert(ctx context.Context, group *models.Group) (*models.Group, error)
}

// AiServiceRepository interface defines AI service catalog operations.
type AiServiceRepository interface {
	GetByName(ctx context.Context, name string) (*models.AiService, error)
	// DefaultModel returns the default model of a service, or nil when the
	// catalog has none configured.
	DefaultModel(ctx context.Context, serviceID int64) (*models.AiModel, error)
	SetAvailability(ctx context.Context, name string, available bool) error
}
