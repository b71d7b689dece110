package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/models"
	"github.com/salamraya/iqjan-bot/internal/repository"
)

type usageService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewUsageService(repo repository.Repository, logger *zap.Logger) UsageService {
	return &usageService{
		repo:   repo,
		logger: logger,
	}
}

// IncrementUsage records one successful call against a credential. The DB
// update is a single atomic statement; the in-memory credential mirrors the
// new counters afterwards.
func (s *usageService) IncrementUsage(ctx context.Context, credential *models.Credential, usage models.JSONMap) error {
	if err := s.repo.Credentials().IncrementUsage(ctx, credential.ID, usage); err != nil {
		return fmt.Errorf("failed to increment usage for key %d: %w", credential.ID, err)
	}

	now := time.Now()
	credential.UsageCount++
	credential.CurrentDailyUsage++
	credential.LastUsedAt.Time = now
	credential.LastUsedAt.Valid = true
	credential.LastUsageDate.Time = now
	credential.LastUsageDate.Valid = true
	if credential.UsageStats == nil {
		credential.UsageStats = models.JSONMap{}
	}
	for k, v := range usage {
		credential.UsageStats[k] = v
	}

	s.logger.Info("Tracked credential usage",
		zap.Int64("keyID", credential.ID),
		zap.String("keyName", credential.Name),
		zap.Int("dailyUsage", credential.CurrentDailyUsage),
		zap.Int("totalUsage", credential.UsageCount))

	return nil
}

// LimitReached reports whether a credential is over its daily cap. A stale
// last_usage_date means the counter belongs to a previous day: it is reset
// lazily, in the DB and on the passed credential, before answering false.
func (s *usageService) LimitReached(ctx context.Context, credential *models.Credential) (bool, error) {
	if !credential.MaxUsagePerDay.Valid || credential.MaxUsagePerDay.Int64 <= 0 {
		return false, nil
	}

	if credential.LastUsageDate.Valid && sameDay(credential.LastUsageDate.Time, time.Now()) {
		return credential.CurrentDailyUsage >= int(credential.MaxUsagePerDay.Int64), nil
	}

	if credential.CurrentDailyUsage > 0 || credential.LastUsageDate.Valid {
		if err := s.repo.Credentials().ResetDailyUsage(ctx, credential.ID); err != nil {
			return false, fmt.Errorf("failed to reset daily usage for key %d: %w", credential.ID, err)
		}
		s.logger.Info("Reset stale daily usage counter",
			zap.Int64("keyID", credential.ID),
			zap.String("keyName", credential.Name))
	}

	credential.CurrentDailyUsage = 0
	credential.LastUsageDate.Time = time.Now()
	credential.LastUsageDate.Valid = true

	return false, nil
}

// Stats returns the per-key usage listing of a service.
func (s *usageService) Stats(ctx context.Context, serviceName string) (*api.UsageStatsResponse, error) {
	credentials, err := s.repo.Credentials().List(ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	keys := make([]api.CredentialUsage, 0, len(credentials))
	for _, cred := range credentials {
		usage := api.CredentialUsage{
			ServiceName: serviceName,
			KeyName:     cred.Name,
			TotalUsage:  cred.UsageCount,
			DailyUsage:  cred.CurrentDailyUsage,
			IsActive:    cred.IsActive,
			IsAvailable: cred.IsAvailable,
			Priority:    cred.Priority,
		}

		if cred.MaxUsagePerDay.Valid {
			maxDaily := int(cred.MaxUsagePerDay.Int64)
			usage.MaxDailyUsage = &maxDaily
		}

		if cred.LastUsedAt.Valid {
			usage.LastUsedAt = &cred.LastUsedAt.Time
		}

		keys = append(keys, usage)
	}

	return &api.UsageStatsResponse{
		ServiceName: serviceName,
		Keys:        keys,
	}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
