package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/salamraya/iqjan-bot/internal/models"
)

type groupRepository struct {
	ext sqlx.ExtContext
}

func NewGroupRepository(ext sqlx.ExtContext) GroupRepository {
	return &groupRepository{
		ext: ext,
	}
}

// Upsert finds or creates a group keyed by (external_id, provider), updating
// the title and type on every call.
func (r *groupRepository) Upsert(ctx context.Context, group *models.Group) (*models.Group, error) {
	query := `
		INSERT INTO groups (
			external_id, provider, title, type, extra, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (external_id, provider) DO UPDATE
		SET title = EXCLUDED.title,
		    type = EXCLUDED.type,
		    extra = EXCLUDED.extra,
		    updated_at = NOW()
		RETURNING id, external_id, provider, title, type, extra,
		          created_at, updated_at
	`

	var stored models.Group
	err := sqlx.GetContext(ctx, r.ext, &stored, query,
		group.ExternalID,
		group.Provider,
		group.Title,
		group.Type,
		group.Extra,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert group: %w", err)
	}

	return &stored, nil
}
