package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/ai"
	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/messenger"
	"github.com/salamraya/iqjan-bot/internal/metrics"
	"github.com/salamraya/iqjan-bot/internal/repository"
)

type Service struct {
	Pipeline   PipelineService
	Usage      UsageService
	Credential CredentialService
	Scheduler  SchedulerService
	Health     HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	msgr messenger.Messenger,
	provider ai.Provider,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	usageService := NewUsageService(repo, logger)
	credentialService := NewCredentialService(repo, usageService, logger)
	pipelineService := NewPipelineService(cfg, repo, redisClient, msgr, provider, m, logger)
	schedulerService := NewSchedulerService(cfg, repo, redisClient, provider, logger)
	healthService := NewHealthService(repo, redisClient, schedulerService, pipelineService, cfg.Ai.Service)

	return &Service{
		Pipeline:   pipelineService,
		Usage:      usageService,
		Credential: credentialService,
		Scheduler:  schedulerService,
		Health:     healthService,
	}
}
