package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/models"
	"github.com/salamraya/iqjan-bot/internal/repository/mocks"
	"github.com/salamraya/iqjan-bot/internal/service"
)

func newCredentialFixture(t *testing.T) (*mocks.MockCredentialRepository, service.CredentialService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	credRepo := mocks.NewMockCredentialRepository(ctrl)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().Credentials().Return(credRepo).AnyTimes()

	logger := zap.NewNop()
	usage := service.NewUsageService(repo, logger)
	return credRepo, service.NewCredentialService(repo, usage, logger)
}

func TestCredentialService_Select_FirstUsable(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return([]*models.Credential{
		{ID: 1, Name: "primary", Priority: 10},
		{ID: 2, Name: "backup", Priority: 5},
	}, nil)

	cred, err := svc.Select(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cred.ID)
}

func TestCredentialService_Select_SkipsExhausted(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	today := sql.NullTime{Time: time.Now(), Valid: true}
	dailyCap := sql.NullInt64{Int64: 100, Valid: true}

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return([]*models.Credential{
		{ID: 1, Name: "primary", Priority: 10, MaxUsagePerDay: dailyCap, CurrentDailyUsage: 100, LastUsageDate: today},
		{ID: 2, Name: "backup", Priority: 5, MaxUsagePerDay: dailyCap, CurrentDailyUsage: 12, LastUsageDate: today},
	}, nil)

	cred, err := svc.Select(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cred.ID, "the exhausted higher-priority key is skipped")
}

func TestCredentialService_Select_AllExhausted(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	today := sql.NullTime{Time: time.Now(), Valid: true}
	dailyCap := sql.NullInt64{Int64: 10, Valid: true}

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return([]*models.Credential{
		{ID: 1, MaxUsagePerDay: dailyCap, CurrentDailyUsage: 10, LastUsageDate: today},
		{ID: 2, MaxUsagePerDay: dailyCap, CurrentDailyUsage: 11, LastUsageDate: today},
	}, nil)

	_, err := svc.Select(context.Background(), "openrouter")
	require.ErrorIs(t, err, service.ErrNoCredentialAvailable)
}

func TestCredentialService_Select_NoKeys(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return(nil, nil)

	_, err := svc.Select(context.Background(), "openrouter")
	require.ErrorIs(t, err, service.ErrNoCredentialAvailable)
}

func TestCredentialService_Select_StaleCounterResets(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	yesterday := sql.NullTime{Time: time.Now().AddDate(0, 0, -1), Valid: true}

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return([]*models.Credential{
		{
			ID:                1,
			Name:              "primary",
			MaxUsagePerDay:    sql.NullInt64{Int64: 100, Valid: true},
			CurrentDailyUsage: 100,
			LastUsageDate:     yesterday,
		},
	}, nil)
	credRepo.EXPECT().ResetDailyUsage(gomock.Any(), int64(1)).Return(nil)

	cred, err := svc.Select(context.Background(), "openrouter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cred.ID)
	assert.Equal(t, 0, cred.CurrentDailyUsage)
}

func TestCredentialService_Select_RepositoryError(t *testing.T) {
	credRepo, svc := newCredentialFixture(t)

	credRepo.EXPECT().GetAvailable(gomock.Any(), "openrouter").Return(nil, errors.New("db down"))

	_, err := svc.Select(context.Background(), "openrouter")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNoCredentialAvailable)
}
