package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/salamraya/iqjan-bot/internal/models"
)

type userRepository struct {
	ext sqlx.ExtContext
}

func NewUserRepository(ext sqlx.ExtContext) UserRepository {
	return &userRepository{
		ext: ext,
	}
}

// Upsert finds or creates a user keyed by (external_id, provider). Profile
// fields are refreshed on every call so renames propagate.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (
			external_id, provider, username, first_name, last_name,
			language_code, is_bot, extra, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (external_id, provider) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    extra = EXCLUDED.extra,
		    updated_at = NOW()
		RETURNING id, external_id, provider, username, first_name, last_name,
		          language_code, is_bot, extra, created_at, updated_at
	`

	var stored models.User
	err := sqlx.GetContext(ctx, r.ext, &stored, query,
		user.ExternalID,
		user.Provider,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
		user.IsBot,
		user.Extra,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &stored, nil
}
