package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/salamraya/iqjan-bot/internal/models"
)

type exchangeRepository struct {
	ext sqlx.ExtContext
}

func NewExchangeRepository(ext sqlx.ExtContext) ExchangeRepository {
	return &exchangeRepository{
		ext: ext,
	}
}

// Create inserts a new exchange with pending AI fields and returns its id.
func (r *exchangeRepository) Create(ctx context.Context, exchange *models.Exchange) (int64, error) {
	query := `
		INSERT INTO exchanges (
			user_id, group_id, provider, external_message_id, message_type,
			content, ai_service, raw_payload, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := sqlx.GetContext(ctx, r.ext, &id, query,
		exchange.UserID,
		exchange.GroupID,
		exchange.Provider,
		exchange.ExternalMessageID,
		exchange.MessageType,
		exchange.Content,
		exchange.AiService,
		string(exchange.RawPayload),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create exchange: %w", err)
	}

	return id, nil
}

// Finalize records the terminal state of an exchange. Exactly one of
// response and processingError is expected to be non-nil.
func (r *exchangeRepository) Finalize(ctx context.Context, id int64, response *string, usage models.JSONMap, model string, processingError *string) error {
	query := `
		UPDATE exchanges
		SET ai_response = $2,
		    ai_usage = $3,
		    ai_model = NULLIF($4, ''),
		    processing_error = $5,
		    processed_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.ext.ExecContext(ctx, query, id, response, usage, model, processingError); err != nil {
		return fmt.Errorf("failed to finalize exchange: %w", err)
	}

	return nil
}

// GetProcessed retrieves finalized exchanges, newest first, with pagination.
func (r *exchangeRepository) GetProcessed(ctx context.Context, offset, limit int) ([]*models.Exchange, error) {
	query := `
		SELECT id, user_id, group_id, provider, external_message_id,
		       message_type, content, ai_service, ai_model, ai_response,
		       ai_usage, processing_error, processed_at, raw_payload,
		       created_at, updated_at
		FROM exchanges
		WHERE processed_at IS NOT NULL
		ORDER BY processed_at DESC
		LIMIT $1 OFFSET $2
	`

	var exchanges []*models.Exchange
	if err := sqlx.SelectContext(ctx, r.ext, &exchanges, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to get processed exchanges: %w", err)
	}

	return exchanges, nil
}

// CountProcessed returns the total count of finalized exchanges.
func (r *exchangeRepository) CountProcessed(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM exchanges WHERE processed_at IS NOT NULL`

	if err := sqlx.GetContext(ctx, r.ext, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count processed exchanges: %w", err)
	}

	return count, nil
}
