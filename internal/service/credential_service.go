package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/models"
	"github.com/salamraya/iqjan-bot/internal/repository"
)

// ErrNoCredentialAvailable means every key of the service is inactive,
// unavailable or over its daily cap.
var ErrNoCredentialAvailable = errors.New("no credential available")

type credentialService struct {
	repo   repository.Repository
	usage  UsageService
	logger *zap.Logger
}

func NewCredentialService(repo repository.Repository, usage UsageService, logger *zap.Logger) CredentialService {
	return &credentialService{
		repo:   repo,
		usage:  usage,
		logger: logger,
	}
}

// Select walks the active and available keys of a service in priority order
// (highest first, insertion order on ties) and returns the first one under
// its daily cap.
func (s *credentialService) Select(ctx context.Context, serviceName string) (*models.Credential, error) {
	credentials, err := s.repo.Credentials().GetAvailable(ctx, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials for %s: %w", serviceName, err)
	}

	for _, cred := range credentials {
		reached, err := s.usage.LimitReached(ctx, cred)
		if err != nil {
			return nil, err
		}
		if reached {
			s.logger.Debug("Credential over daily cap, skipping",
				zap.Int64("keyID", cred.ID),
				zap.String("keyName", cred.Name))
			continue
		}
		return cred, nil
	}

	s.logger.Warn("No usable credential found", zap.String("service", serviceName))
	return nil, ErrNoCredentialAvailable
}
