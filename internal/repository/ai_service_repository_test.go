package repository_test

import (
	"context"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salamraya/iqjan-bot/internal/repository"
)

func TestAiServiceRepository_GetByName_Success(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAiServiceRepository(db)

	_, err := insertTestService(db.DB, "openrouter", true)
	require.NoError(t, err)

	svc, err := repo.GetByName(ctx, "openrouter")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", svc.Name)
	assert.True(t, svc.IsActive)
}

func TestAiServiceRepository_GetByName_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAiServiceRepository(db)

	_, err := repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrAiServiceNotFound)
}

func TestAiServiceRepository_DefaultModel_Success(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAiServiceRepository(db)

	serviceID, err := insertTestService(db.DB, "openrouter", true)
	require.NoError(t, err)

	_, err = insertTestModel(db.DB, serviceID, "openai/gpt-4o-mini", true, false)
	require.NoError(t, err)
	_, err = insertTestModel(db.DB, serviceID, "openai/gpt-oss-20b:free", true, true)
	require.NoError(t, err)
	// Inactive default must not win
	_, err = insertTestModel(db.DB, serviceID, "meta/old-model", false, true)
	require.NoError(t, err)

	model, err := repo.DefaultModel(ctx, serviceID)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, "openai/gpt-oss-20b:free", model.Name)
}

func TestAiServiceRepository_DefaultModel_NoneConfigured(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAiServiceRepository(db)

	serviceID, err := insertTestService(db.DB, "openrouter", true)
	require.NoError(t, err)

	model, err := repo.DefaultModel(ctx, serviceID)
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestAiServiceRepository_SetAvailability_Success(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := repository.NewAiServiceRepository(db)

	_, err := insertTestService(db.DB, "openrouter", true)
	require.NoError(t, err)

	err = repo.SetAvailability(ctx, "openrouter", false)
	require.NoError(t, err)

	svc, err := repo.GetByName(ctx, "openrouter")
	require.NoError(t, err)
	assert.False(t, svc.IsAvailable)

	err = repo.SetAvailability(ctx, "openrouter", true)
	require.NoError(t, err)

	svc, err = repo.GetByName(ctx, "openrouter")
	require.NoError(t, err)
	assert.True(t, svc.IsAvailable)
}
