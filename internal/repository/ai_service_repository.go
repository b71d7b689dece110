package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/salamraya/iqjan-bot/internal/models"
)

// ErrAiServiceNotFound is returned when the catalog has no row for a name.
var ErrAiServiceNotFound = errors.New("ai service not found")

type aiServiceRepository struct {
	ext sqlx.ExtContext
}

func NewAiServiceRepository(ext sqlx.ExtContext) AiServiceRepository {
	return &aiServiceRepository{
		ext: ext,
	}
}

// GetByName retrieves one AI service by its unique name.
func (r *aiServiceRepository) GetByName(ctx context.Context, name string) (*models.AiService, error) {
	query := `
		SELECT id, name, display_name, api_url, default_model, config,
		       is_active, is_available, priority, created_at, updated_at
		FROM ai_services
		WHERE name = $1
	`

	var service models.AiService
	if err := sqlx.GetContext(ctx, r.ext, &service, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAiServiceNotFound
		}
		return nil, fmt.Errorf("failed to get ai service: %w", err)
	}

	return &service, nil
}

// DefaultModel returns the model flagged as default for a service, or nil
// when none is configured.
func (r *aiServiceRepository) DefaultModel(ctx context.Context, serviceID int64) (*models.AiModel, error) {
	query := `
		SELECT id, ai_service_id, name, display_name, provider, pricing_type,
		       max_tokens, is_active, is_default, priority, created_at, updated_at
		FROM ai_models
		WHERE ai_service_id = $1
		  AND is_active = TRUE
		  AND is_default = TRUE
		ORDER BY priority DESC
		LIMIT 1
	`

	var model models.AiModel
	if err := sqlx.GetContext(ctx, r.ext, &model, query, serviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default model: %w", err)
	}

	return &model, nil
}

// SetAvailability flips the availability flag of a service.
func (r *aiServiceRepository) SetAvailability(ctx context.Context, name string, available bool) error {
	query := `
		UPDATE ai_services
		SET is_available = $2,
		    updated_at = NOW()
		WHERE name = $1
	`

	if _, err := r.ext.ExecContext(ctx, query, name, available); err != nil {
		return fmt.Errorf("failed to set ai service availability: %w", err)
	}

	return nil
}
