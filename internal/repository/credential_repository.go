package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/salamraya/iqjan-bot/internal/models"
)

type credentialRepository struct {
	ext sqlx.ExtContext
}

func NewCredentialRepository(ext sqlx.ExtContext) CredentialRepository {
	return &credentialRepository{
		ext: ext,
	}
}

const credentialColumns = `
	k.id, k.ai_service_id, k.name, k.api_key, k.usage_count,
	k.max_usage_per_day, k.current_daily_usage, k.last_usage_date,
	k.last_used_at, k.usage_stats, k.is_active, k.is_available,
	k.priority, k.created_at, k.updated_at
`

// GetAvailable retrieves the usable credentials of a service. Priority
// descending, id ascending on ties, so selection order is stable.
func (r *credentialRepository) GetAvailable(ctx context.Context, serviceName string) ([]*models.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM ai_api_keys k
		JOIN ai_services s ON s.id = k.ai_service_id
		WHERE s.name = $1
		  AND k.is_active = TRUE
		  AND k.is_available = TRUE
		ORDER BY k.priority DESC, k.id ASC
	`

	var credentials []*models.Credential
	if err := sqlx.SelectContext(ctx, r.ext, &credentials, query, serviceName); err != nil {
		return nil, fmt.Errorf("failed to get available credentials: %w", err)
	}

	return credentials, nil
}

// List retrieves all credentials of a service regardless of flags.
func (r *credentialRepository) List(ctx context.Context, serviceName string) ([]*models.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM ai_api_keys k
		JOIN ai_services s ON s.id = k.ai_service_id
		WHERE s.name = $1
		ORDER BY k.priority DESC, k.id ASC
	`

	var credentials []*models.Credential
	if err := sqlx.SelectContext(ctx, r.ext, &credentials, query, serviceName); err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	return credentials, nil
}

// IncrementUsage bumps the lifetime and daily counters in one statement so
// concurrent callers cannot lose updates. Incoming stats keys overwrite any
// existing keys in usage_stats.
func (r *credentialRepository) IncrementUsage(ctx context.Context, id int64, stats models.JSONMap) error {
	query := `
		UPDATE ai_api_keys
		SET usage_count = usage_count + 1,
		    current_daily_usage = current_daily_usage + 1,
		    last_used_at = NOW(),
		    last_usage_date = CURRENT_DATE,
		    usage_stats = COALESCE(usage_stats, '{}'::jsonb) || COALESCE($2::jsonb, '{}'::jsonb),
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.ext.ExecContext(ctx, query, id, stats); err != nil {
		return fmt.Errorf("failed to increment credential usage: %w", err)
	}

	return nil
}

// ResetDailyUsage zeroes the daily counter and stamps today's date.
func (r *credentialRepository) ResetDailyUsage(ctx context.Context, id int64) error {
	query := `
		UPDATE ai_api_keys
		SET current_daily_usage = 0,
		    last_usage_date = CURRENT_DATE,
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.ext.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to reset daily usage: %w", err)
	}

	return nil
}
