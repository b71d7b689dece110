// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/salamraya/iqjan-bot/internal/api"
	"github.com/salamraya/iqjan-bot/internal/messenger"
	"github.com/salamraya/iqjan-bot/internal/middleware"
	"github.com/salamraya/iqjan-bot/internal/scheduler"
	"github.com/salamraya/iqjan-bot/internal/service"
)

const (
	errorCodeSchedulerAlreadyRunning = "SCHEDULER_ALREADY_RUNNING"
	errorCodeSchedulerNotRunning     = "SCHEDULER_NOT_RUNNING"
	errorCodeInvalidSignature        = "INVALID_SIGNATURE"
)

const (
	errorMessageSchedulerAlreadyRunning   = "Scheduler is already running"
	errorMessageSchedulerNotRunning       = "Scheduler is not running"
	errorMessageFailedToStartScheduler    = "Failed to start scheduler"
	errorMessageFailedToStopScheduler     = "Failed to stop scheduler"
	errorMessageFailedToRetrieveExchanges = "Failed to retrieve exchanges"
	errorMessageFailedToRetrieveUsage     = "Failed to retrieve usage stats"
	errorMessageFailedToReadBody          = "Failed to read request body"
	errorMessageFailedToProcessWebhook    = "Failed to process webhook"
	errorMessageFailedToSetupWebhook      = "Failed to register webhook"
	errorMessageInvalidSignature          = "Webhook signature verification failed"
)

const (
	schedulerMessageStarted = "Scheduler started successfully"
	schedulerMessageStopped = "Scheduler stopped successfully"
)

// signatureHeader carries the messenger's webhook signature when the
// platform sends one.
const signatureHeader = "X-Webhook-Signature"

type Handler struct {
	service   *service.Service
	messenger messenger.Messenger
	aiService string
	logger    *zap.Logger
}

// NewHandler creates a new handler instance that implements api.ServerInterface.
func NewHandler(svc *service.Service, msgr messenger.Messenger, aiService string, logger *zap.Logger) api.ServerInterface {
	return &Handler{
		service:   svc,
		messenger: msgr,
		aiService: aiService,
		logger:    logger,
	}
}

// HandleWebhook implements api.ServerInterface.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeBadRequest, errorMessageFailedToReadBody)
		return
	}

	if !h.messenger.VerifySignature(body, r.Header.Get(signatureHeader)) {
		h.logger.Warn("Webhook signature verification failed",
			zap.String("request_id", requestID))
		h.sendError(w, r, http.StatusUnauthorized, errorCodeInvalidSignature, errorMessageInvalidSignature)
		return
	}

	result, err := h.service.Pipeline.Process(r.Context(), body)
	if err != nil {
		h.logger.Error("Failed to process webhook",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToProcessWebhook)
		return
	}

	render.JSON(w, r, api.WebhookResponse{
		Status:  result.Status,
		Message: result.Message,
	})
}

// SetupWebhook implements api.ServerInterface.
func (h *Handler) SetupWebhook(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.service.Pipeline.SetupWebhook(r.Context()); err != nil {
		h.logger.Error("Failed to register webhook",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToSetupWebhook)
		return
	}

	render.JSON(w, r, api.WebhookResponse{
		Status:  api.WebhookResponseStatusOk,
		Message: "webhook registered",
	})
}

// StartScheduler implements api.ServerInterface.
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Start()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerAlreadyRunning, errorMessageSchedulerAlreadyRunning)
			return
		}

		h.logger.Error("Failed to start scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStartScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStarted,
		Message: schedulerMessageStarted,
	})
}

// StopScheduler implements api.ServerInterface.
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Stop()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerNotRunning, errorMessageSchedulerNotRunning)
			return
		}

		h.logger.Error("Failed to stop scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStopScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStopped,
		Message: schedulerMessageStopped,
	})
}

// GetExchanges implements api.ServerInterface.
func (h *Handler) GetExchanges(w http.ResponseWriter, r *http.Request, params api.GetExchangesParams) {
	page := 1
	limit := 20

	if params.Page != nil && *params.Page >= 1 {
		page = *params.Page
	}

	if params.Limit != nil && *params.Limit >= 1 && *params.Limit <= 100 {
		limit = *params.Limit
	}

	result, err := h.service.Pipeline.GetExchanges(r.Context(), page, limit)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to get exchanges",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToRetrieveExchanges)
		return
	}

	render.JSON(w, r, result)
}

// GetUsageStats implements api.ServerInterface.
func (h *Handler) GetUsageStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Usage.Stats(r.Context(), h.aiService)
	if err != nil {
		requestID := middleware.GetRequestID(r.Context())
		h.logger.Error("Failed to get usage stats",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToRetrieveUsage)
		return
	}

	render.JSON(w, r, result)
}

// HealthCheck implements api.ServerInterface.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	response := api.HealthResponse{
		Status:    health.Status,
		Timestamp: time.Now(),
	}

	if health.SchedulerStatus != "" {
		status := health.SchedulerStatus
		response.SchedulerStatus = &status
	}

	if health.DatabaseStatus != "" {
		status := health.DatabaseStatus
		response.DatabaseStatus = &status
	}

	if health.RedisStatus != "" {
		status := health.RedisStatus
		response.RedisStatus = &status
	}

	if health.AiServiceStatus != "" {
		status := health.AiServiceStatus
		response.AiServiceStatus = &status
	}

	if health.CircuitBreakerStatus != "" {
		response.CircuitBreakerStatus = &health.CircuitBreakerStatus
	}

	if health.CircuitBreakerState != "" {
		state := health.CircuitBreakerState
		response.CircuitBreakerState = &state
	}

	if health.Status == api.Unhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, api.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Timestamp: func() *time.Time {
			t := time.Now()
			return &t
		}(),
	})
}
