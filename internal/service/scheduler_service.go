package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/ai"
	"github.com/salamraya/iqjan-bot/internal/config"
	"github.com/salamraya/iqjan-bot/internal/repository"
	"github.com/salamraya/iqjan-bot/internal/scheduler"
)

type schedulerService struct {
	cfg         *config.Config
	repo        repository.Repository
	redisClient *redis.Client
	provider    ai.Provider
	scheduler   *scheduler.Scheduler
	logger      *zap.Logger
}

func NewSchedulerService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	provider ai.Provider,
	logger *zap.Logger,
) SchedulerService {
	interval := time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute

	svc := &schedulerService{
		cfg:         cfg,
		repo:        repo,
		redisClient: redisClient,
		provider:    provider,
		logger:      logger,
	}

	svc.scheduler = scheduler.NewScheduler(logger, interval, svc.executeSweepTask)
	return svc
}

func (s *schedulerService) Start() error {
	ctx := context.Background()
	return s.scheduler.Start(ctx)
}

func (s *schedulerService) Stop() error {
	return s.scheduler.Stop()
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

// executeSweepTask probes the AI provider with the highest-priority
// credential and records the outcome on the service catalog. The model list
// is cached in redis while the provider answers.
func (s *schedulerService) executeSweepTask(ctx context.Context) error {
	serviceName := s.cfg.Ai.Service

	credentials, err := s.repo.Credentials().GetAvailable(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to load credentials for sweep: %w", err)
	}
	if len(credentials) == 0 {
		s.logger.Warn("Availability sweep skipped, no credentials configured",
			zap.String("service", serviceName))
		return nil
	}

	apiKey := credentials[0].APIKey
	available := s.provider.IsAvailable(ctx, apiKey)

	if err := s.repo.Services().SetAvailability(ctx, serviceName, available); err != nil {
		return fmt.Errorf("failed to record availability: %w", err)
	}

	s.logger.Info("Availability sweep completed",
		zap.String("service", serviceName),
		zap.Bool("available", available))

	if available {
		s.cacheModels(ctx, apiKey, serviceName)
	}

	return nil
}

// cacheModels refreshes the redis model catalog cache. Best effort only.
func (s *schedulerService) cacheModels(ctx context.Context, apiKey, serviceName string) {
	catalog := s.provider.ListModels(ctx, apiKey)
	if len(catalog) == 0 {
		return
	}

	ids := make([]string, 0, len(catalog))
	for _, m := range catalog {
		ids = append(ids, m.ID)
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return
	}

	cacheKey := fmt.Sprintf("ai:%s:models", serviceName)
	if err := s.redisClient.Set(ctx, cacheKey, payload, time.Hour).Err(); err != nil {
		s.logger.Warn("Failed to cache model catalog in Redis",
			zap.String("service", serviceName),
			zap.Error(err))
	}
}
