package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/repository"
)

type healthService struct {
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	pipelineService  PipelineService
	aiServiceName    string
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	pipelineService PipelineService,
	aiServiceName string,
) HealthService {
	return &healthService{
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		pipelineService:  pipelineService,
		aiServiceName:    aiServiceName,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status: api.Healthy,
	}

	if s.schedulerService.IsRunning() {
		status.SchedulerStatus = api.HealthResponseSchedulerStatusRunning
	} else {
		status.SchedulerStatus = api.HealthResponseSchedulerStatusStopped
	}

	status.DatabaseStatus = s.checkDatabaseHealth()

	status.RedisStatus = s.checkRedisHealth()

	status.AiServiceStatus = s.checkAiHealth()

	state, requests, failures := s.pipelineService.GetCircuitBreakerStatus()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	// Determine overall health
	if status.DatabaseStatus != api.HealthResponseDatabaseStatusConnected || status.RedisStatus != api.HealthResponseRedisStatusConnected {
		status.Status = api.Unhealthy
	}

	// Open circuit breaker or unavailable AI degrade the service without
	// taking it down
	if status.Status == api.Healthy &&
		(state == api.Open || status.AiServiceStatus == api.HealthResponseAiServiceStatusUnavailable) {
		status.Status = api.Degraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() api.HealthResponseDatabaseStatus {
	err := s.repo.Ping()
	if err != nil {
		return api.HealthResponseDatabaseStatusDisconnected
	}
	return api.HealthResponseDatabaseStatusConnected
}

func (s *healthService) checkRedisHealth() api.HealthResponseRedisStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.HealthResponseRedisStatusDisconnected
	}

	return api.HealthResponseRedisStatusConnected
}

// checkAiHealth reports the last sweep outcome recorded on the catalog.
func (s *healthService) checkAiHealth() api.HealthResponseAiServiceStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	svc, err := s.repo.Services().GetByName(ctx, s.aiServiceName)
	if err != nil || !svc.IsActive || !svc.IsAvailable {
		return api.HealthResponseAiServiceStatusUnavailable
	}

	return api.HealthResponseAiServiceStatusAvailable
}
