package service

import "github.com/salamraya/iqjan-bot/internal/api"

// ProcessResult is the outcome of one pipeline run.
type ProcessResult struct {
	Status     api.WebhookResponseStatus `json:"status"`
	Message    string                    `json:"message"`
	ExchangeID int64                     `json:"exchange_id,omitempty"`
}

type HealthStatus struct {
	Status               api.HealthResponseStatus              `json:"status"`
	SchedulerStatus      api.HealthResponseSchedulerStatus     `json:"scheduler_status"`
	DatabaseStatus       api.HealthResponseDatabaseStatus      `json:"database_status"`
	RedisStatus          api.HealthResponseRedisStatus         `json:"redis_status"`
	AiServiceStatus      api.HealthResponseAiServiceStatus     `json:"ai_service_status"`
	CircuitBreakerStatus string                                `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  api.HealthResponseCircuitBreakerState `json:"circuit_breaker_state,omitempty"`
}
