package service_test

import (
	"errors"
	"net"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/models"
	"github.com/salamraya/iqjan-bot/internal/repository"
	"github.com/salamraya/iqjan-bot/internal/repository/mocks"
	"github.com/salamraya/iqjan-bot/internal/service"
	servicemocks "github.com/salamraya/iqjan-bot/internal/service/mocks"
)

// startFakeRedis runs a minimal listener that answers every command with
// +PONG, enough for the health check ping.
func startFakeRedis(t *testing.T) *redis.Client {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				buf := make([]byte, 1024)
				for {
					if _, err := c.Read(buf); err != nil {
						return
					}
					if _, err := c.Write([]byte("+PONG\r\n")); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	client := redis.NewClient(&redis.Options{Addr: ln.Addr().String()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func availableAiService() *models.AiService {
	return &models.AiService{ID: 1, Name: "openrouter", IsActive: true, IsAvailable: true}
}

func TestHealthService_GetHealth_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockRepository(ctrl)
	mockSvcRepo := mocks.NewMockAiServiceRepository(ctrl)
	mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
	mockPipeline := servicemocks.NewMockPipelineService(ctrl)

	mockRepo.EXPECT().Services().Return(mockSvcRepo).AnyTimes()
	mockScheduler.EXPECT().IsRunning().Return(true)
	mockRepo.EXPECT().Ping().Return(nil)
	mockSvcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(availableAiService(), nil)
	mockPipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Closed, uint32(100), uint32(5))

	healthService := service.NewHealthService(mockRepo, startFakeRedis(t), mockScheduler, mockPipeline, "openrouter")

	status := healthService.GetHealth()
	require.NotNil(t, status)
	assert.Equal(t, api.Healthy, status.Status)
	assert.Equal(t, api.HealthResponseSchedulerStatusRunning, status.SchedulerStatus)
	assert.Equal(t, api.HealthResponseDatabaseStatusConnected, status.DatabaseStatus)
	assert.Equal(t, api.HealthResponseRedisStatusConnected, status.RedisStatus)
	assert.Equal(t, api.HealthResponseAiServiceStatusAvailable, status.AiServiceStatus)
	assert.Equal(t, api.Closed, status.CircuitBreakerState)
	assert.Equal(t, "Requests: 100, Failures: 5 (5.0%)", status.CircuitBreakerStatus)
}

func TestHealthService_GetHealth_Transitions(t *testing.T) {
	tests := []struct {
		name                    string
		redisUp                 bool
		setupMocks              func(*mocks.MockRepository, *mocks.MockAiServiceRepository, *servicemocks.MockSchedulerService, *servicemocks.MockPipelineService)
		expectedStatus          api.HealthResponseStatus
		expectedAiServiceStatus api.HealthResponseAiServiceStatus
	}{
		{
			name:    "open circuit breaker degrades",
			redisUp: true,
			setupMocks: func(repo *mocks.MockRepository, svcRepo *mocks.MockAiServiceRepository, scheduler *servicemocks.MockSchedulerService, pipeline *servicemocks.MockPipelineService) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(nil)
				svcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(availableAiService(), nil)
				pipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Open, uint32(100), uint32(60))
			},
			expectedStatus:          api.Degraded,
			expectedAiServiceStatus: api.HealthResponseAiServiceStatusAvailable,
		},
		{
			name:    "unavailable ai service degrades",
			redisUp: true,
			setupMocks: func(repo *mocks.MockRepository, svcRepo *mocks.MockAiServiceRepository, scheduler *servicemocks.MockSchedulerService, pipeline *servicemocks.MockPipelineService) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(nil)
				svc := availableAiService()
				svc.IsAvailable = false
				svcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(svc, nil)
				pipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Closed, uint32(10), uint32(0))
			},
			expectedStatus:          api.Degraded,
			expectedAiServiceStatus: api.HealthResponseAiServiceStatusUnavailable,
		},
		{
			name:    "unknown ai service degrades",
			redisUp: true,
			setupMocks: func(repo *mocks.MockRepository, svcRepo *mocks.MockAiServiceRepository, scheduler *servicemocks.MockSchedulerService, pipeline *servicemocks.MockPipelineService) {
				scheduler.EXPECT().IsRunning().Return(false)
				repo.EXPECT().Ping().Return(nil)
				svcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(nil, repository.ErrAiServiceNotFound)
				pipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Closed, uint32(0), uint32(0))
			},
			expectedStatus:          api.Degraded,
			expectedAiServiceStatus: api.HealthResponseAiServiceStatusUnavailable,
		},
		{
			name:    "database down is unhealthy even with an open breaker",
			redisUp: true,
			setupMocks: func(repo *mocks.MockRepository, svcRepo *mocks.MockAiServiceRepository, scheduler *servicemocks.MockSchedulerService, pipeline *servicemocks.MockPipelineService) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(errors.New("connection failed"))
				svcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(availableAiService(), nil)
				pipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Open, uint32(1000), uint32(999))
			},
			expectedStatus:          api.Unhealthy,
			expectedAiServiceStatus: api.HealthResponseAiServiceStatusAvailable,
		},
		{
			name:    "redis down is unhealthy",
			redisUp: false,
			setupMocks: func(repo *mocks.MockRepository, svcRepo *mocks.MockAiServiceRepository, scheduler *servicemocks.MockSchedulerService, pipeline *servicemocks.MockPipelineService) {
				scheduler.EXPECT().IsRunning().Return(true)
				repo.EXPECT().Ping().Return(nil)
				svcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(availableAiService(), nil)
				pipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Closed, uint32(0), uint32(0))
			},
			expectedStatus:          api.Unhealthy,
			expectedAiServiceStatus: api.HealthResponseAiServiceStatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := mocks.NewMockRepository(ctrl)
			mockSvcRepo := mocks.NewMockAiServiceRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockPipeline := servicemocks.NewMockPipelineService(ctrl)

			mockRepo.EXPECT().Services().Return(mockSvcRepo).AnyTimes()
			tt.setupMocks(mockRepo, mockSvcRepo, mockScheduler, mockPipeline)

			redisClient := startFakeRedis(t)
			if !tt.redisUp {
				redisClient = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
				t.Cleanup(func() { _ = redisClient.Close() })
			}

			healthService := service.NewHealthService(mockRepo, redisClient, mockScheduler, mockPipeline, "openrouter")

			status := healthService.GetHealth()
			require.NotNil(t, status)
			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedAiServiceStatus, status.AiServiceStatus)
		})
	}
}

func TestHealthService_CircuitBreakerStatusFormatting(t *testing.T) {
	tests := []struct {
		name             string
		requests         uint32
		failures         uint32
		expectedCBStatus string
	}{
		{
			name:             "no requests",
			requests:         0,
			failures:         0,
			expectedCBStatus: "No requests yet",
		},
		{
			name:             "all successful",
			requests:         100,
			failures:         0,
			expectedCBStatus: "Requests: 100, Failures: 0 (0.0%)",
		},
		{
			name:             "some failures",
			requests:         100,
			failures:         25,
			expectedCBStatus: "Requests: 100, Failures: 25 (25.0%)",
		},
		{
			name:             "all failures",
			requests:         50,
			failures:         50,
			expectedCBStatus: "Requests: 50, Failures: 50 (100.0%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockRepo := mocks.NewMockRepository(ctrl)
			mockSvcRepo := mocks.NewMockAiServiceRepository(ctrl)
			mockScheduler := servicemocks.NewMockSchedulerService(ctrl)
			mockPipeline := servicemocks.NewMockPipelineService(ctrl)

			mockRepo.EXPECT().Services().Return(mockSvcRepo).AnyTimes()
			mockScheduler.EXPECT().IsRunning().Return(true)
			mockRepo.EXPECT().Ping().Return(nil)
			mockSvcRepo.EXPECT().GetByName(gomock.Any(), "openrouter").Return(availableAiService(), nil)
			mockPipeline.EXPECT().GetCircuitBreakerStatus().Return(api.Closed, tt.requests, tt.failures)

			healthService := service.NewHealthService(mockRepo, startFakeRedis(t), mockScheduler, mockPipeline, "openrouter")

			status := healthService.GetHealth()
			assert.Equal(t, tt.expectedCBStatus, status.CircuitBreakerStatus)
		})
	}
}
